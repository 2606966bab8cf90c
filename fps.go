package sidescroll

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS and TPS in the top-left corner of the
// frame. The text image is refreshed at most every half second.
type fpsOverlay struct {
	img     *ebiten.Image
	counter int
}

// fpsRefreshTicks is how many rendered frames pass between text updates,
// assuming the default tick rate; precision doesn't matter here.
const fpsRefreshTicks = 30

func (f *fpsOverlay) draw(target *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0".
		f.img = ebiten.NewImage(100, 32)
		f.counter = fpsRefreshTicks // force an immediate first refresh
	}

	f.counter++
	if f.counter >= fpsRefreshTicks {
		f.counter = 0
		f.img.Clear()
		// Semi-transparent background for readability.
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}

	target.DrawImage(f.img, nil)
}
