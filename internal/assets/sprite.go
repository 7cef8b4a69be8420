// Package assets loads the text-art sprites drawn by the game.
//
// A sprite file is plain UTF-8 text: one rune per pixel, one line per row.
// Spaces are transparent. Rows shorter than the widest row are padded with
// transparent pixels.
package assets

import (
	"bytes"
	"sync/atomic"
	"unicode/utf8"

	"github.com/vovakirdan/roadrush/internal/core"
)

// Sprite is a text-art image. It implements core.Image.
type Sprite struct {
	color  core.Color
	pixels atomic.Pointer[[][]rune]
}

// NewSprite returns an empty sprite that reports Loaded() == false until
// pixels are stored into it.
func NewSprite(color core.Color) *Sprite {
	return &Sprite{color: color}
}

// Parse builds a loaded sprite from text art.
func Parse(data []byte, color core.Color) *Sprite {
	s := NewSprite(color)
	s.store(parseRows(data))
	return s
}

// Loaded reports whether the pixels are available.
func (s *Sprite) Loaded() bool {
	return s.pixels.Load() != nil
}

// Size returns the sprite dimensions in pixels, or 0x0 while loading.
func (s *Sprite) Size() (int, int) {
	rows := s.pixels.Load()
	if rows == nil || len(*rows) == 0 {
		return 0, 0
	}
	return len((*rows)[0]), len(*rows)
}

// At returns the pixel at (x, y). ok is false for transparent or
// out-of-range pixels and while the sprite is still loading.
func (s *Sprite) At(x, y int) (rune, core.Color, bool) {
	rows := s.pixels.Load()
	if rows == nil || y < 0 || y >= len(*rows) {
		return ' ', core.ColorDefault, false
	}
	row := (*rows)[y]
	if x < 0 || x >= len(row) || row[x] == ' ' {
		return ' ', core.ColorDefault, false
	}
	return row[x], s.color, true
}

func (s *Sprite) store(rows [][]rune) {
	s.pixels.Store(&rows)
}

// parseRows splits text art into equal-width rows.
func parseRows(data []byte) [][]rune {
	data = bytes.TrimRight(data, "\r\n")
	if len(data) == 0 {
		return [][]rune{}
	}

	lines := bytes.Split(data, []byte("\n"))
	width := 0
	for _, line := range lines {
		width = core.Max(width, utf8.RuneCount(bytes.TrimRight(line, "\r")))
	}

	rows := make([][]rune, len(lines))
	for i, line := range lines {
		row := make([]rune, width)
		for j := range row {
			row[j] = ' '
		}
		copy(row, []rune(string(bytes.TrimRight(line, "\r"))))
		rows[i] = row
	}
	return rows
}

var _ core.Image = (*Sprite)(nil)
