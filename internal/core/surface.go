package core

// Font describes how text should be drawn. Cell-based surfaces ignore Size.
type Font struct {
	Size float64 // Nominal size in playfield units
	Bold bool
}

// Image is a drawable picture. An image that has not finished loading reports
// Loaded() == false and is skipped by surfaces.
type Image interface {
	Loaded() bool
	Size() (w, h int)
	// At returns the rune and color of a pixel; ok is false for transparent pixels.
	At(x, y int) (r rune, c Color, ok bool)
}

// Surface is the drawing target for a game session. Coordinates are in
// playfield units; implementations map them to their own resolution.
type Surface interface {
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c Color)
	DrawImage(img Image, x, y, w, h float64)
	DrawText(text string, x, y float64, font Font, c Color)
}

// Cue identifies a sound effect.
type Cue int

const (
	CueCrash Cue = iota
)

// Audio plays sound cues. Play must not block.
type Audio interface {
	Play(cue Cue)
}
