package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelbot/pixelbot/internal/geom"
)

// noiseGray fills a grayscale image from a deterministic LCG so tests
// get reproducible high-variance pixel data.
func noiseGray(w, h int, seed uint32) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	state := seed
	for i := range img.Pix {
		state = state*1664525 + 1013904223
		img.Pix[i] = uint8(state >> 24)
	}
	return img
}

// crop copies a sub-rectangle of src into a fresh zero-origin image.
func crop(src *image.Gray, r geom.Rect) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out.Pix[y*out.Stride+x] = src.Pix[(r.Y+y)*src.Stride+r.X+x]
		}
	}
	return out
}

// stamp writes pattern into dst at the given offset.
func stamp(dst *image.Gray, pattern *image.Gray, at geom.Point) {
	pw, ph := pattern.Bounds().Dx(), pattern.Bounds().Dy()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			dst.Pix[(at.Y+y)*dst.Stride+at.X+x] = pattern.Pix[y*pattern.Stride+x]
		}
	}
}

func TestFindExactSelfMatch(t *testing.T) {
	haystack := noiseGray(64, 48, 1)
	want := geom.Rect{X: 17, Y: 9, Width: 12, Height: 10}
	tpl := &Template{gray: crop(haystack, want), name: "self"}

	m, err := Find(haystack, tpl, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, want, m.Rect)
	assert.InDelta(t, 1.0, m.Confidence, 1e-9)
}

func TestFindThresholdRejection(t *testing.T) {
	haystack := noiseGray(64, 48, 1)
	tpl := &Template{gray: noiseGray(12, 10, 99), name: "uncorrelated"}

	_, err := Find(haystack, tpl, 0.95)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindInvalidInput(t *testing.T) {
	haystack := noiseGray(20, 20, 1)

	tests := []struct {
		name      string
		tpl       *Template
		threshold float64
	}{
		{"template wider than haystack", &Template{gray: noiseGray(21, 5, 2)}, 0.8},
		{"template taller than haystack", &Template{gray: noiseGray(5, 21, 2)}, 0.8},
		{"zero-sized template", &Template{gray: image.NewGray(image.Rect(0, 0, 0, 0))}, 0.8},
		{"threshold above one", &Template{gray: noiseGray(5, 5, 2)}, 1.5},
		{"negative threshold", &Template{gray: noiseGray(5, 5, 2)}, -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Find(haystack, tt.tpl, tt.threshold)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Two identical copies of the template tie at the maximum score; the
// raster-scan-first rule picks the upper-left one.
func TestFindRasterScanTieBreak(t *testing.T) {
	pattern := noiseGray(6, 4, 7)
	haystack := image.NewGray(image.Rect(0, 0, 40, 30))
	first := geom.Point{X: 3, Y: 2}
	second := geom.Point{X: 22, Y: 17}
	stamp(haystack, pattern, first)
	stamp(haystack, pattern, second)

	tpl := &Template{gray: pattern, name: "tie"}
	m, err := Find(haystack, tpl, 0.9)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: first.X, Y: first.Y, Width: 6, Height: 4}, m.Rect)
	assert.InDelta(t, 1.0, m.Confidence, 1e-9)
}

// When the window content scrolls, a repeated search on fresh captures
// must report the moved offset. Scaled-down version of the observed
// behavior where a 59-pixel scroll moved the match rect from y=676 to
// y=735.
func TestFindTracksContentMovement(t *testing.T) {
	pattern := noiseGray(30, 24, 3)
	tpl := &Template{gray: pattern, name: "logo"}

	before := noiseGray(200, 150, 11)
	stamp(before, pattern, geom.Point{X: 119, Y: 67})
	m1, err := Find(before, tpl, 0.9)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 119, Y: 67, Width: 30, Height: 24}, m1.Rect)

	after := noiseGray(200, 150, 11)
	stamp(after, pattern, geom.Point{X: 119, Y: 73})
	m2, err := Find(after, tpl, 0.9)
	require.NoError(t, err)
	assert.Equal(t, m1.Rect.X, m2.Rect.X)
	assert.Equal(t, m1.Rect.Y+6, m2.Rect.Y)
}

// A flat template carries no correlation signal; it only matches an
// identical flat region.
func TestFindFlatTemplate(t *testing.T) {
	flat := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range flat.Pix {
		flat.Pix[i] = 128
	}
	tpl := &Template{gray: flat, name: "flat"}

	haystack := noiseGray(30, 30, 5)
	stamp(haystack, flat, geom.Point{X: 12, Y: 8})

	m, err := Find(haystack, tpl, 0.9)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 12, Y: 8, Width: 5, Height: 5}, m.Rect)
	assert.Equal(t, 1.0, m.Confidence)
}

// A sub-image haystack has a non-zero bounds origin; the match rect
// must come back relative to that origin with the right pixels read.
func TestFindSubImageHaystack(t *testing.T) {
	full := noiseGray(80, 60, 13)
	pattern := noiseGray(8, 6, 77)
	stamp(full, pattern, geom.Point{X: 30, Y: 25})

	sub, ok := full.SubImage(image.Rect(20, 20, 60, 50)).(*image.Gray)
	require.True(t, ok)

	tpl := &Template{gray: pattern, name: "sub"}
	m, err := Find(sub, tpl, 0.9)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 10, Y: 5, Width: 8, Height: 6}, m.Rect)
	assert.InDelta(t, 1.0, m.Confidence, 1e-9)
}

func TestFindMatchWithinBounds(t *testing.T) {
	haystack := noiseGray(50, 40, 21)
	tpl := &Template{gray: crop(haystack, geom.Rect{X: 44, Y: 35, Width: 6, Height: 5}), name: "edge"}

	m, err := Find(haystack, tpl, 0.8)
	require.NoError(t, err)
	assert.LessOrEqual(t, m.Rect.X+m.Rect.Width, 50)
	assert.LessOrEqual(t, m.Rect.Y+m.Rect.Height, 40)
	assert.GreaterOrEqual(t, m.Confidence, 0.0)
	assert.LessOrEqual(t, m.Confidence, 1.0)
}
