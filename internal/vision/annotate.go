package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotate draws the match rectangle and a small confidence label onto
// a copy of the haystack, for the test_find --annotate output.
func Annotate(img image.Image, m Match) *image.RGBA {
	out := ImageToRGBA(img)

	boxColor := color.RGBA{R: 255, A: 255}
	rect := image.Rect(m.Rect.X, m.Rect.Y, m.Rect.X+m.Rect.Width, m.Rect.Y+m.Rect.Height)
	drawBox(out, rect.Intersect(out.Bounds()), boxColor)

	label := fmt.Sprintf("(%d,%d) %.2f", m.Rect.X, m.Rect.Y, m.Confidence)
	drawLabel(out, m.Rect.X, m.Rect.Y-4, label, boxColor)
	return out
}

// ImageToRGBA converts any image to *image.RGBA, copying pixels only
// when the underlying type requires it.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		out := image.NewRGBA(rgba.Bounds())
		copy(out.Pix, rgba.Pix)
		return out
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func drawBox(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y, col)
		img.SetRGBA(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X, y, col)
		img.SetRGBA(rect.Max.X-1, y, col)
	}
}

func drawLabel(img *image.RGBA, x, y int, text string, col color.RGBA) {
	if y < basicfont.Face7x13.Ascent {
		y = basicfont.Face7x13.Ascent
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
