package core

import (
	"math/rand"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching horizontal edges",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: true,
		},
		{
			name:     "touching vertical edges",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: true,
		},
		{
			name:     "touching corners",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 10, 10, 10),
			expected: true,
		},
		{
			name:     "just past the edge",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10.01, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "identical rects",
			a:        NewRect(3.5, 7.25, 50, 100),
			b:        NewRect(3.5, 7.25, 50, 100),
			expected: true,
		},
		{
			name:     "shared x range, disjoint y range",
			a:        NewRect(0, 0, 100, 30),
			b:        NewRect(20, 550, 50, 100),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Overlaps(tc.b)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Overlaps(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectOverlapsSymmetricRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randRect := func() Rect {
		return NewRect(
			float64(rng.Intn(200)),
			float64(rng.Intn(200)),
			float64(1+rng.Intn(60)),
			float64(1+rng.Intn(60)),
		)
	}

	for i := 0; i < 5000; i++ {
		a, b := randRect(), randRect()
		if a.Overlaps(b) != b.Overlaps(a) {
			t.Fatalf("Overlaps not symmetric for %+v and %+v", a, b)
		}

		disjointX := a.Right() < b.Left() || b.Right() < a.Left()
		disjointY := a.Bottom() < b.Top() || b.Bottom() < a.Top()
		if (disjointX || disjointY) && a.Overlaps(b) {
			t.Fatalf("rects with disjoint ranges reported overlapping: %+v %+v", a, b)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Left() != 5 {
		t.Errorf("Left() = %v, expected 5", r.Left())
	}
	if r.Top() != 10 {
		t.Errorf("Top() = %v, expected 10", r.Top())
	}
	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}
