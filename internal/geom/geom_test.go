package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{"even dimensions", Rect{X: 10, Y: 20, Width: 100, Height: 40}, Point{X: 60, Y: 40}},
		{"odd dimensions", Rect{X: 0, Y: 0, Width: 5, Height: 3}, Point{X: 2, Y: 1}},
		{"observed match rect", Rect{X: 1192, Y: 676, Width: 300, Height: 240}, Point{X: 1342, Y: 796}},
		{"zero size", Rect{X: 7, Y: 9}, Point{X: 7, Y: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rect.Center())
		})
	}
}

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{-0.5, 0},
		{-1.5, -2},
		{2.4, 2},
		{2.6, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfEven(tt.in), "RoundHalfEven(%v)", tt.in)
	}
}

func TestToGlobal(t *testing.T) {
	origin := Point{X: 100, Y: 50}

	// On a 2x display a physical offset of (300, 240) is 150x120
	// logical points from the frame origin.
	got := ToGlobal(Point{X: 300, Y: 240}, origin, 2)
	assert.Equal(t, Point{X: 250, Y: 170}, got)

	// 1x display is the identity plus the origin offset.
	got = ToGlobal(Point{X: 42, Y: 7}, origin, 1)
	assert.Equal(t, Point{X: 142, Y: 57}, got)
}

// Mapping a local point to global and back must reproduce the original
// within one pixel for every scale factor in use.
func TestRoundTripWithinOnePixel(t *testing.T) {
	origin := Point{X: 37, Y: -12}
	for _, scale := range []float64{1, 2, 3} {
		for x := 0; x < 50; x++ {
			for y := 0; y < 50; y++ {
				local := Point{X: x, Y: y}
				global := ToGlobal(local, origin, scale)
				back := ToLocal(global, origin, scale)
				if abs(back.X-local.X) > 1 || abs(back.Y-local.Y) > 1 {
					t.Fatalf("scale %v: %v -> %v -> %v drifts more than one pixel", scale, local, global, back)
				}
			}
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	assert.True(t, r.Contains(Point{X: 10, Y: 10}))
	assert.True(t, r.Contains(Point{X: 14, Y: 14}))
	assert.False(t, r.Contains(Point{X: 15, Y: 10}))
	assert.False(t, r.Contains(Point{X: 9, Y: 10}))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
