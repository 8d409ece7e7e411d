package vision

import (
	"fmt"
	"image"
	"math"

	"github.com/pixelbot/pixelbot/internal/geom"
)

// DefaultThreshold is the minimum confidence accepted when the caller
// does not supply one.
const DefaultThreshold = 0.8

// Match is the outcome of one search. Rect is local to the haystack in
// physical pixels; Confidence is in [0,1] with 1 meaning exact match.
type Match struct {
	Rect       geom.Rect `yaml:"rect" json:"rect"`
	Confidence float64   `yaml:"confidence" json:"confidence"`
}

// Find locates the best-matching position of tpl inside haystack using
// zero-mean normalized cross-correlation, scanning every valid offset.
// The correlation coefficient r in [-1,1] is mapped to the confidence
// score (r+1)/2. The match rect is relative to the haystack's bounds
// origin, so sub-images work as haystacks.
//
// Tie-break: when several offsets reach the maximum score, the first
// one in raster-scan order (top-to-bottom, left-to-right) wins; the
// strict comparison below is what enforces that.
//
// Returns ErrInvalidInput for a zero-sized or oversized template or a
// threshold outside [0,1], and ErrNotFound (carrying the best score)
// when the best score is strictly below threshold.
func Find(haystack *image.Gray, tpl *Template, threshold float64) (Match, error) {
	if haystack == nil || tpl == nil {
		return Match{}, fmt.Errorf("nil image: %w", ErrInvalidInput)
	}
	if threshold < 0 || threshold > 1 {
		return Match{}, fmt.Errorf("threshold %v outside [0,1]: %w", threshold, ErrInvalidInput)
	}

	hw, hh := haystack.Bounds().Dx(), haystack.Bounds().Dy()
	tw, th := tpl.Width(), tpl.Height()
	if tw == 0 || th == 0 {
		return Match{}, fmt.Errorf("template has zero size: %w", ErrInvalidInput)
	}
	if tw > hw || th > hh {
		return Match{}, fmt.Errorf("template %dx%d exceeds haystack %dx%d: %w", tw, th, hw, hh, ErrInvalidInput)
	}

	// Template statistics do not depend on the offset; hoist them out
	// of the scan.
	n := float64(tw * th)
	var sumT, sumTT float64
	for y := 0; y < th; y++ {
		row := tpl.gray.PixOffset(tpl.gray.Rect.Min.X, tpl.gray.Rect.Min.Y+y)
		for x := 0; x < tw; x++ {
			v := float64(tpl.gray.Pix[row+x])
			sumT += v
			sumTT += v * v
		}
	}
	varT := sumTT - sumT*sumT/n

	best := -1.0
	var bestAt geom.Point
	for oy := 0; oy <= hh-th; oy++ {
		for ox := 0; ox <= hw-tw; ox++ {
			score := scoreAt(haystack, tpl.gray, ox, oy, tw, th, n, sumT, varT)
			if score > best {
				best = score
				bestAt = geom.Point{X: ox, Y: oy}
			}
		}
	}

	if best < threshold {
		return Match{}, fmt.Errorf("best score %.4f below threshold %.2f: %w", best, threshold, ErrNotFound)
	}
	return Match{
		Rect:       geom.Rect{X: bestAt.X, Y: bestAt.Y, Width: tw, Height: th},
		Confidence: best,
	}, nil
}

// scoreAt computes the confidence of the template placed at offset
// (ox, oy) in the haystack.
func scoreAt(haystack, tpl *image.Gray, ox, oy, tw, th int, n, sumT, varT float64) float64 {
	var sumH, sumHH, sumHT float64
	for y := 0; y < th; y++ {
		hrow := haystack.PixOffset(haystack.Rect.Min.X+ox, haystack.Rect.Min.Y+oy+y)
		trow := tpl.PixOffset(tpl.Rect.Min.X, tpl.Rect.Min.Y+y)
		for x := 0; x < tw; x++ {
			h := float64(haystack.Pix[hrow+x])
			t := float64(tpl.Pix[trow+x])
			sumH += h
			sumHH += h * h
			sumHT += h * t
		}
	}

	varH := sumHH - sumH*sumH/n
	if varT == 0 || varH == 0 {
		// Flat template or flat region: correlation is undefined.
		// Identical flat patches are an exact match; anything else
		// carries no signal.
		if varT == 0 && varH == 0 && sumH == sumT {
			return 1
		}
		return 0
	}

	r := (sumHT - sumH*sumT/n) / math.Sqrt(varH*varT)
	score := (r + 1) / 2
	// Guard against floating-point drift pushing an exact match past 1.
	if score > 1 {
		score = 1
	} else if score < 0 {
		score = 0
	}
	return score
}
