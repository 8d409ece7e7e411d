// Package geom provides the coordinate types shared by the capture,
// matching, and input layers, and the conversion between physical
// capture pixels and logical global screen coordinates.
//
// Two coordinate spaces exist:
//
//   - logical points: what the window server reports for window frames
//     and what synthetic input events consume
//   - physical pixels: what a capture buffer contains; on high-density
//     displays one logical point covers scale×scale physical pixels
//
// All conversions round half-to-even on the final pixel coordinate so
// that repeated round trips do not drift in one direction.
package geom

import "math"

// Point is an x/y coordinate pair. Whether it is logical or physical
// depends on context; conversion functions state which they expect.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Center returns the midpoint of the rectangle. This is what turns a
// match rectangle into an actionable click target.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// RoundHalfEven rounds v to the nearest integer, ties to even.
func RoundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// ToGlobal converts a physical pixel coordinate local to a capture of a
// window into a logical global screen coordinate. frameOrigin is the
// window frame's top-left corner in logical global coordinates and
// scale the display's physical-per-logical pixel ratio.
func ToGlobal(local Point, frameOrigin Point, scale float64) Point {
	return Point{
		X: frameOrigin.X + RoundHalfEven(float64(local.X)/scale),
		Y: frameOrigin.Y + RoundHalfEven(float64(local.Y)/scale),
	}
}

// ToLocal is the inverse of ToGlobal: it converts a logical global
// screen coordinate back into a physical pixel coordinate local to a
// capture of the window.
func ToLocal(global Point, frameOrigin Point, scale float64) Point {
	return Point{
		X: RoundHalfEven(float64(global.X-frameOrigin.X) * scale),
		Y: RoundHalfEven(float64(global.Y-frameOrigin.Y) * scale),
	}
}
