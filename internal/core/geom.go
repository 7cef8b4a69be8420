// Package core provides fundamental types and utilities for Road Rush.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned bounding box in playfield units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether two rectangles intersect.
// Edges are inclusive: rectangles that only touch count as overlapping.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.Bottom() < other.Top() ||
		r.Top() > other.Bottom() ||
		r.Right() < other.Left() ||
		r.Left() > other.Right())
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
