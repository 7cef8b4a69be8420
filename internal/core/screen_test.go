package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: 'X'})
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.SetCell(1, 1, Cell{Rune: '█', Color: ColorRed})
	if c := s.GetCell(1, 1); c.Rune != '█' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red block", c)
	}

	// Out of bounds should be silent
	s.SetCell(-1, 0, Cell{Rune: 'A'})
	s.SetCell(100, 0, Cell{Rune: 'A'})
	s.SetCell(0, -1, Cell{Rune: 'A'})
	s.SetCell(0, 100, Cell{Rune: 'A'})

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0) != blank {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillArea(0, 0, 10, 10, Cell{Rune: 'X', Color: ColorBlue})

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.GetCell(x, y) != blank {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, s.GetCell(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorWhite)

	expected := "Hello"
	for i, ch := range expected {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorWhite {
			t.Errorf("DrawText: expected white %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "▲ok", ColorDefault)

	if s.Row(0)[:len("▲ok")] != "▲ok" {
		t.Errorf("multibyte runes should occupy one cell each, row = %q", s.Row(0))
	}
}

func TestScreenFillArea(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillArea(2, 2, 3, 3, Cell{Rune: '#', Color: ColorRed})

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("FillArea: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}

	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("FillArea should not affect outside area")
	}

	s.ClearArea(2, 2, 1, 1)
	if s.Get(2, 2) != ' ' || s.Get(3, 2) != '#' {
		t.Error("ClearArea should only reset the requested cells")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorDefault)
	s.DrawText(0, 1, "BBBBB", ColorRed)
	s.DrawText(0, 2, "CCCCC", ColorDefault)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)
	s.DrawText(0, 5, "World", ColorDefault)

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	if row0 := s.Row(0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}

	// Negative sizes collapse to an empty screen
	s.Resize(-3, -3)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative resize should give 0x0, got %dx%d", s.Width(), s.Height())
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test", ColorDefault)

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	if outOfBounds := s.Row(-1); outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}
