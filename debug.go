package sidescroll

import (
	"fmt"
	"os"
)

// globalDebug enables stderr diagnostics package-wide.
// Plain bool, no atomic — sidescroll is single-threaded by design.
var globalDebug bool

// SetDebug toggles debug diagnostics for the whole package. When enabled,
// the engine warns about suspicious configurations (ribbon images smaller
// than the viewport, very large sprite counts) on stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sidescroll] "+format+"\n", args...)
}

// debugMaxSprites is the sprite count above which the O(n²) collision scan
// starts to dominate a tick.
const debugMaxSprites = 1000

func debugCheckSpriteCount(n int) {
	if n > debugMaxSprites {
		debugf("warning: %d sprites managed (threshold %d); the pairwise collision scan is O(n²)", n, debugMaxSprites)
	}
}
