package tui

import (
	"math"

	"github.com/vovakirdan/roadrush/internal/core"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// CellSurface draws a playfield onto a Screen. The field is scaled to the
// largest size that fits the viewport with its aspect ratio kept, and centered
// horizontally.
type CellSurface struct {
	screen *core.Screen
	fieldW float64
	fieldH float64

	// Layout, recomputed by Layout.
	scaleX float64 // Field units per column
	scaleY float64 // Field units per row
	offX   int
	offY   int
	cols   int
	rows   int
}

var _ core.Surface = (*CellSurface)(nil)

// NewCellSurface creates a surface for a fieldW x fieldH playfield drawn into
// the top-left cols x rows cells of screen.
func NewCellSurface(screen *core.Screen, fieldW, fieldH float64, cols, rows int) *CellSurface {
	s := &CellSurface{screen: screen, fieldW: fieldW, fieldH: fieldH}
	s.Layout(cols, rows)
	return s
}

// Layout fits the field into a cols x rows viewport.
func (s *CellSurface) Layout(cols, rows int) {
	cols = core.Max(cols, 1)
	rows = core.Max(rows, 1)

	s.scaleX = math.Max(s.fieldW/float64(cols), s.fieldH/(float64(rows)*cellAspect))
	s.scaleY = s.scaleX * cellAspect
	s.cols = core.Clamp(int(math.Round(s.fieldW/s.scaleX)), 1, cols)
	s.rows = core.Clamp(int(math.Round(s.fieldH/s.scaleY)), 1, rows)
	s.offX = (cols - s.cols) / 2
	s.offY = 0
}

// Screen returns the screen the surface draws into.
func (s *CellSurface) Screen() *core.Screen {
	return s.screen
}

// span maps a field interval [v, v+size) to cells [c0, c1), clipped to [0, n).
// A non-empty interval always covers at least one cell.
func span(v, size, scale float64, n int) (c0, c1 int) {
	c0 = int(math.Floor(v / scale))
	c1 = int(math.Ceil((v + size) / scale))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return core.Clamp(c0, 0, n), core.Clamp(c1, 0, n)
}

// cells returns the clipped cell rectangle covered by a field rectangle, in
// viewport coordinates.
func (s *CellSurface) cells(x, y, w, h float64) (x0, y0, x1, y1 int) {
	x0, x1 = span(x, w, s.scaleX, s.cols)
	y0, y1 = span(y, h, s.scaleY, s.rows)
	return x0, y0, x1, y1
}

func (s *CellSurface) fill(x, y, w, h float64, c core.Cell) {
	x0, y0, x1, y1 := s.cells(x, y, w, h)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	s.screen.FillArea(s.offX+x0, s.offY+y0, x1-x0, y1-y0, c)
}

// ClearRect blanks the cells under a field rectangle.
func (s *CellSurface) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := s.cells(x, y, w, h)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	s.screen.ClearArea(s.offX+x0, s.offY+y0, x1-x0, y1-y0)
}

// FillRect paints a solid block. Black is drawn as blank cells, which is how
// the terminal shows its background.
func (s *CellSurface) FillRect(x, y, w, h float64, c core.Color) {
	if c == core.ColorBlack {
		s.ClearRect(x, y, w, h)
		return
	}
	s.fill(x, y, w, h, core.Cell{Rune: '█', Color: c})
}

// DrawImage scales img into a field rectangle with nearest-neighbor sampling.
// Nil or unloaded images draw nothing; transparent pixels keep what is below.
func (s *CellSurface) DrawImage(img core.Image, x, y, w, h float64) {
	if img == nil || !img.Loaded() {
		return
	}
	iw, ih := img.Size()
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return
	}

	x0, y0, x1, y1 := s.cells(x, y, w, h)
	for cy := y0; cy < y1; cy++ {
		// Sample at the cell center, relative to the image origin.
		fy := (float64(cy)+0.5)*s.scaleY - y
		py := int(fy * float64(ih) / h)
		if py < 0 || py >= ih {
			continue
		}
		for cx := x0; cx < x1; cx++ {
			fx := (float64(cx)+0.5)*s.scaleX - x
			px := int(fx * float64(iw) / w)
			if px < 0 || px >= iw {
				continue
			}
			if r, c, ok := img.At(px, py); ok {
				s.screen.SetCell(s.offX+cx, s.offY+cy, core.Cell{Rune: r, Color: c})
			}
		}
	}
}

// DrawText writes text starting at the cell containing (x, y), one cell per
// rune, clipped to the viewport. The font size is ignored.
func (s *CellSurface) DrawText(text string, x, y float64, font core.Font, c core.Color) {
	cx := int(math.Floor(x / s.scaleX))
	cy := int(math.Floor(y / s.scaleY))
	if cy < 0 || cy >= s.rows {
		return
	}
	runes := []rune(text)
	if cx < 0 {
		if -cx >= len(runes) {
			return
		}
		runes = runes[-cx:]
		cx = 0
	}
	if cx >= s.cols {
		return
	}
	if len(runes) > s.cols-cx {
		runes = runes[:s.cols-cx]
	}
	s.screen.DrawText(s.offX+cx, s.offY+cy, string(runes), c)
}
