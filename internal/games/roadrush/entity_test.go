package roadrush

import (
	"testing"

	"github.com/vovakirdan/roadrush/internal/core"
)

func TestEntityAdvance(t *testing.T) {
	field := testField()

	tests := []struct {
		name  string
		e     Entity
		wantX float64
		wantY float64
	}{
		{
			name:  "obstacle falls",
			e:     Entity{Kind: KindObstacle, Rect: core.NewRect(10, 10, 100, 30), Speed: 2},
			wantX: 10,
			wantY: 12,
		},
		{
			name:  "player moves right",
			e:     Entity{Kind: KindPlayer, Rect: core.NewRect(225, 550, 50, 100), Speed: 2},
			wantX: 227,
			wantY: 550,
		},
		{
			name:  "player clamped at min",
			e:     Entity{Kind: KindPlayer, Rect: core.NewRect(41, 550, 50, 100), Speed: -2},
			wantX: 40,
			wantY: 550,
		},
		{
			name:  "player clamped at max",
			e:     Entity{Kind: KindPlayer, Rect: core.NewRect(399, 550, 50, 100), Speed: 2},
			wantX: 400,
			wantY: 550,
		},
		{
			name:  "background scrolls",
			e:     Entity{Kind: KindBackground, Rect: core.NewRect(0, 10, 500, 700), Speed: 2},
			wantX: 0,
			wantY: 12,
		},
		{
			name:  "background wraps",
			e:     Entity{Kind: KindBackground, Rect: core.NewRect(0, 698, 500, 700), Speed: 2},
			wantX: 0,
			wantY: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.e
			e.Advance(field)
			if e.X != tc.wantX || e.Y != tc.wantY {
				t.Errorf("after Advance = (%v, %v), expected (%v, %v)", e.X, e.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestBackgroundDrawsTwice(t *testing.T) {
	surface := &recordingSurface{}
	bg := Entity{Kind: KindBackground, Rect: core.NewRect(0, 100, 500, 700), Speed: 2}

	bg.Draw(surface, testField())

	want := []string{"image 0,100,500,700", "image 0,-600,500,700"}
	if len(surface.calls) != 2 || surface.calls[0] != want[0] || surface.calls[1] != want[1] {
		t.Errorf("calls = %v, expected %v", surface.calls, want)
	}
}

func TestBackgroundNegativeSpeedDrawsOnce(t *testing.T) {
	surface := &recordingSurface{}
	bg := Entity{Kind: KindBackground, Rect: core.NewRect(0, 0, 500, 700), Speed: -1}

	bg.Draw(surface, testField())
	if len(surface.calls) != 1 {
		t.Errorf("calls = %v, expected a single image", surface.calls)
	}
}

func TestPlayerDrawUsesImage(t *testing.T) {
	surface := &recordingSurface{}
	p := Entity{Kind: KindPlayer, Rect: core.NewRect(225, 550, 50, 100)}

	p.Draw(surface, testField())
	if len(surface.calls) != 1 || surface.calls[0] != "image 225,550,50,100" {
		t.Errorf("calls = %v", surface.calls)
	}
}
