package model

import (
	"image"

	"github.com/pixelbot/pixelbot/internal/geom"
)

// CapturedImage is one pixel buffer grabbed from the screen. The buffer
// is exclusively owned by the caller and is not reused between
// captures.
//
// Pixels is in physical pixels; Frame is the logical global rectangle
// the buffer was taken from. On high-density displays the physical
// dimensions exceed the logical ones by Scale (rounded half-to-even,
// never silently truncated).
type CapturedImage struct {
	Pixels *image.RGBA
	Frame  geom.Rect
	Scale  float64
}

// PhysicalWidth returns the buffer width in physical pixels.
func (c *CapturedImage) PhysicalWidth() int { return c.Pixels.Bounds().Dx() }

// PhysicalHeight returns the buffer height in physical pixels.
func (c *CapturedImage) PhysicalHeight() int { return c.Pixels.Bounds().Dy() }

// ExpectedPhysicalSize returns the physical dimensions implied by the
// logical frame and the scale factor.
func (c *CapturedImage) ExpectedPhysicalSize() (w, h int) {
	return geom.RoundHalfEven(float64(c.Frame.Width) * c.Scale),
		geom.RoundHalfEven(float64(c.Frame.Height) * c.Scale)
}

// ReconcileScale enforces the invariant that the buffer's physical size
// equals the logical frame size times Scale. When the window server
// hands back a buffer of different geometry (a window straddling
// displays renders at its backing scale, which need not match the
// display-mode ratio the enumeration guessed), the buffer wins: Scale
// is rederived from the buffer width so coordinate mapping stays
// consistent with the pixels actually captured.
func (c *CapturedImage) ReconcileScale() {
	w, h := c.ExpectedPhysicalSize()
	if w == c.PhysicalWidth() && h == c.PhysicalHeight() {
		return
	}
	if c.Frame.Width > 0 {
		c.Scale = float64(c.PhysicalWidth()) / float64(c.Frame.Width)
	}
}

// ToGlobal maps a physical pixel coordinate inside this capture to a
// logical global screen coordinate, using the frame the capture was
// actually taken from rather than any cached window geometry.
func (c *CapturedImage) ToGlobal(local geom.Point) geom.Point {
	return geom.ToGlobal(local, c.Frame.Origin(), c.Scale)
}
