// Package vision locates a template image inside a captured pixel
// buffer using normalized cross-correlation over grayscale pixels.
package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder for image.Decode
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // register BMP decoder for image.Decode
)

var (
	// ErrNotFound implies the best match score fell below the
	// threshold.
	ErrNotFound = errors.New("template not found")

	// ErrInvalidInput implies a malformed template, threshold, or
	// haystack.
	ErrInvalidInput = errors.New("invalid matcher input")
)

// Template is a reference pattern to search for. It is loaded once,
// converted to grayscale, and is read-only thereafter, so it can be
// reused across any number of searches.
type Template struct {
	gray *image.Gray
	name string
}

// LoadTemplate reads a template image from a PNG or BMP file.
func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode template %s: %w", path, err)
	}
	t := NewTemplate(img)
	t.name = filepath.Base(path)
	return t, nil
}

// NewTemplate builds a template from an already decoded image.
func NewTemplate(img image.Image) *Template {
	return &Template{gray: Grayscale(img), name: "template"}
}

// Name returns the template's file base name, for log output.
func (t *Template) Name() string { return t.name }

// Width returns the template width in pixels.
func (t *Template) Width() int { return t.gray.Bounds().Dx() }

// Height returns the template height in pixels.
func (t *Template) Height() int { return t.gray.Bounds().Dy() }

// Grayscale converts an image to 8-bit grayscale using the standard
// luminance weights.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	if rgba, ok := img.(*image.RGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			src := (y - rgba.Rect.Min.Y) * rgba.Stride
			dst := (y - bounds.Min.Y) * gray.Stride
			for x := 0; x < bounds.Dx(); x++ {
				r := rgba.Pix[src+x*4]
				g := rgba.Pix[src+x*4+1]
				b := rgba.Pix[src+x*4+2]
				gray.Pix[dst+x] = uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
			}
		}
		return gray
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray.SetGray(x, y, color.Gray{Y: uint8(((r>>8)*299 + (g>>8)*587 + (b>>8)*114) / 1000)})
		}
	}
	return gray
}
