package playing

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/momentum/internal/domain/entity"
)

var (
	colorTraceHit  = color.RGBA{255, 80, 80, 255}
	colorTraceMiss = color.RGBA{80, 255, 120, 160}
	colorTraceBox  = color.RGBA{255, 255, 0, 255}
)

type debugLine struct {
	from, to entity.Vec2
	hit      bool
}

// debugOverlay collects the traces of one tick in world coordinates.
type debugOverlay struct {
	lines []debugLine
	boxes []entity.Rect
}

func (d *debugOverlay) DrawLine(from, to entity.Vec2, hit bool) {
	d.lines = append(d.lines, debugLine{from: from, to: to, hit: hit})
}

func (d *debugOverlay) DrawBox(r entity.Rect) {
	d.boxes = append(d.boxes, r)
}

// Reset drops the previous tick's shapes.
func (d *debugOverlay) Reset() {
	d.lines = d.lines[:0]
	d.boxes = d.boxes[:0]
}

func (d *debugOverlay) draw(screen *ebiten.Image, cam entity.Vec2) {
	for _, l := range d.lines {
		c := colorTraceMiss
		if l.hit {
			c = colorTraceHit
		}
		ebitenutil.DrawLine(screen, l.from.X-cam.X, l.from.Y-cam.Y, l.to.X-cam.X, l.to.Y-cam.Y, c)
	}
	for _, b := range d.boxes {
		strokeRect(screen, b.X-cam.X, b.Y-cam.Y, b.W, b.H, colorTraceBox)
	}
}

func strokeRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	ebitenutil.DrawLine(screen, x, y, x+w, y, c)
	ebitenutil.DrawLine(screen, x+w, y, x+w, y+h, c)
	ebitenutil.DrawLine(screen, x+w, y+h, x, y+h, c)
	ebitenutil.DrawLine(screen, x, y+h, x, y, c)
}
