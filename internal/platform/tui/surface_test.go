package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/roadrush/internal/assets"
	"github.com/vovakirdan/roadrush/internal/core"
)

// A 500x700 field in a 50x35 viewport maps 10 units to a column and 20 to a row.
func newTestSurface() (*CellSurface, *core.Screen) {
	screen := core.NewScreen(50, 35)
	return NewCellSurface(screen, 500, 700, 50, 35), screen
}

func TestLayoutKeepsAspect(t *testing.T) {
	tests := []struct {
		name         string
		cols, rows   int
		wantX, wantW int
		wantH        int
		wantScaleX   float64
	}{
		{"exact fit", 50, 35, 0, 50, 35, 10},
		{"wide terminal centers", 120, 35, 35, 50, 35, 10},
		{"tall terminal", 50, 100, 0, 50, 35, 10},
		{"small terminal", 80, 23, 23, 33, 23, 700.0 / 46},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCellSurface(core.NewScreen(tc.cols, tc.rows), 500, 700, tc.cols, tc.rows)
			if s.offX != tc.wantX || s.offY != 0 || s.cols != tc.wantW || s.rows != tc.wantH {
				t.Errorf("viewport = (%d,%d,%d,%d), expected (%d,0,%d,%d)",
					s.offX, s.offY, s.cols, s.rows, tc.wantX, tc.wantW, tc.wantH)
			}
			if s.scaleX != tc.wantScaleX || s.scaleY != 2*tc.wantScaleX {
				t.Errorf("scale = %v x %v", s.scaleX, s.scaleY)
			}
		})
	}
}

func TestFillRect(t *testing.T) {
	s, screen := newTestSurface()
	s.FillRect(100, 40, 100, 30, core.ColorRed)

	// Columns 10..19, rows 2..3 (40/20=2, ceil(70/20)=4).
	for y := 0; y < 35; y++ {
		for x := 0; x < 50; x++ {
			inside := x >= 10 && x < 20 && y >= 2 && y < 4
			c := screen.GetCell(x, y)
			if inside && (c.Rune != '█' || c.Color != core.ColorRed) {
				t.Fatalf("cell (%d,%d) = %+v, expected red block", x, y, c)
			}
			if !inside && c.Rune != ' ' {
				t.Fatalf("cell (%d,%d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestFillRectTinyCoversOneCell(t *testing.T) {
	s, screen := newTestSurface()
	s.FillRect(101, 41, 0.5, 0.5, core.ColorRed)

	if screen.Get(10, 2) != '█' {
		t.Error("a sub-cell rectangle should still cover one cell")
	}
}

func TestFillRectClipsToViewport(t *testing.T) {
	screen := core.NewScreen(120, 35)
	s := NewCellSurface(screen, 500, 700, 120, 35) // viewport at columns 35..84

	s.FillRect(-100, 650, 200, 200, core.ColorRed)

	if screen.Get(34, 34) != ' ' {
		t.Error("fill leaked left of the viewport")
	}
	if screen.Get(35, 34) != '█' || screen.Get(44, 34) != '█' || screen.Get(45, 34) != ' ' {
		t.Errorf("row 34 = %q", screen.Row(34))
	}
}

func TestFillBlackClears(t *testing.T) {
	s, screen := newTestSurface()
	s.FillRect(0, 0, 500, 700, core.ColorRed)
	s.FillRect(0, 0, 500, 700, core.ColorBlack)

	if c := screen.GetCell(25, 17); c.Rune != ' ' {
		t.Errorf("black fill should blank cells, got %+v", c)
	}
}

func TestClearRect(t *testing.T) {
	s, screen := newTestSurface()
	s.FillRect(0, 0, 500, 700, core.ColorRed)
	s.ClearRect(0, 0, 250, 700)

	if screen.Get(0, 0) != ' ' || screen.Get(24, 34) != ' ' {
		t.Error("cleared half should be blank")
	}
	if screen.Get(25, 0) != '█' {
		t.Error("other half should keep its fill")
	}
}

func TestDrawImageScales(t *testing.T) {
	s, screen := newTestSurface()
	// 2x1 image, left half 'L', right half 'R'.
	img := assets.Parse([]byte("LR"), core.ColorGreen)

	s.DrawImage(img, 0, 0, 200, 40)

	for x := 0; x < 20; x++ {
		want := 'L'
		if x >= 10 {
			want = 'R'
		}
		for y := 0; y < 2; y++ {
			if c := screen.GetCell(x, y); c.Rune != want || c.Color != core.ColorGreen {
				t.Fatalf("cell (%d,%d) = %+v, expected green %q", x, y, c, want)
			}
		}
	}
	if screen.Get(20, 0) != ' ' || screen.Get(0, 2) != ' ' {
		t.Error("image drew outside its rectangle")
	}
}

func TestDrawImageTransparency(t *testing.T) {
	s, screen := newTestSurface()
	s.FillRect(0, 0, 500, 700, core.ColorBlue)

	img := assets.Parse([]byte("X \n X"), core.ColorWhite)
	s.DrawImage(img, 0, 0, 20, 40)

	if screen.Get(0, 0) != 'X' || screen.Get(1, 1) != 'X' {
		t.Errorf("opaque pixels missing: %q / %q", screen.Row(0), screen.Row(1))
	}
	if c := screen.GetCell(1, 0); c.Rune != '█' || c.Color != core.ColorBlue {
		t.Errorf("transparent pixel should keep the fill, got %+v", c)
	}
}

func TestDrawImageSkipsNilAndUnloaded(t *testing.T) {
	s, screen := newTestSurface()

	s.DrawImage(nil, 0, 0, 500, 700)
	s.DrawImage(assets.NewSprite(core.ColorWhite), 0, 0, 500, 700)

	for y := 0; y < 35; y++ {
		if screen.Row(y) != strings.Repeat(" ", 50) {
			t.Fatalf("row %d = %q, expected blank", y, screen.Row(y))
		}
	}
}

func TestDrawImagePartiallyAbove(t *testing.T) {
	s, screen := newTestSurface()
	img := assets.Parse([]byte("A\nB"), core.ColorWhite)

	// Top half (A) is above the field; only B should show, in row 0.
	s.DrawImage(img, 0, -20, 10, 40)

	if screen.Get(0, 0) != 'B' {
		t.Errorf("cell (0,0) = %q, expected 'B'", screen.Get(0, 0))
	}
}

func TestDrawText(t *testing.T) {
	s, screen := newTestSurface()
	s.DrawText("Score 12", 70, 20, core.Font{Size: 20}, core.ColorWhite)

	if got := screen.Row(1)[7:15]; got != "Score 12" {
		t.Errorf("row 1 = %q", screen.Row(1))
	}
	if c := screen.GetCell(7, 1); c.Color != core.ColorWhite {
		t.Errorf("text color = %v", c.Color)
	}

	// Clipped at the right edge and outside the field.
	s.DrawText("overflowing", 450, 0, core.Font{}, core.ColorWhite)
	if screen.Get(45, 0) != 'o' || screen.Get(49, 0) != 'f' {
		t.Errorf("row 0 = %q", screen.Row(0))
	}
	s.DrawText("hidden", 0, 800, core.Font{}, core.ColorWhite)
	s.DrawText("hidden", 0, -30, core.Font{}, core.ColorWhite)
}

func TestDrawTextStaysInsideCenteredViewport(t *testing.T) {
	screen := core.NewScreen(120, 35)
	s := NewCellSurface(screen, 500, 700, 120, 35) // field at columns 35..84

	s.DrawText("abcdef", -30, 0, core.Font{}, core.ColorWhite)
	if got := screen.Row(0)[33:38]; got != "  def" {
		t.Errorf("left clip = %q, expected %q", got, "  def")
	}

	s.DrawText("overflowing", 460, 20, core.Font{}, core.ColorWhite)
	if got := screen.Row(1)[79:87]; got != "  over  " {
		t.Errorf("right clip = %q, expected %q", got, "  over  ")
	}

	s.DrawText("gone", -50, 40, core.Font{}, core.ColorWhite)
	if strings.TrimSpace(screen.Row(2)) != "" {
		t.Errorf("row 2 = %q, expected blank", screen.Row(2))
	}
}

func TestClearRectInsideCenteredViewport(t *testing.T) {
	screen := core.NewScreen(120, 35)
	screen.FillArea(0, 0, 120, 35, core.Cell{Rune: '#', Color: core.ColorRed})
	s := NewCellSurface(screen, 500, 700, 120, 35)

	s.ClearRect(-100, 0, 1000, 20)
	row := screen.Row(0)
	if row[34] != '#' || row[85] != '#' {
		t.Errorf("margins cleared: %q", row)
	}
	if strings.TrimSpace(row[35:85]) != "" {
		t.Errorf("field row not cleared: %q", row[35:85])
	}
	if screen.Row(1)[40] != '#' {
		t.Errorf("row 1 = %q, expected untouched", screen.Row(1))
	}
}
