package model

import "github.com/pixelbot/pixelbot/internal/geom"

// WindowHandle is a point-in-time snapshot of one OS window taken at
// enumeration time. It is a plain value, not a live reference: the real
// window may close, move, or resize at any moment after the snapshot,
// so every operation that consumes a handle re-validates against the
// live window list and treats staleness as an ordinary failure.
type WindowHandle struct {
	// ID is the window server's window number.
	ID int `yaml:"id" json:"id"`
	// Title is the window name as reported by the window server. May
	// be empty for untitled windows.
	Title string `yaml:"title" json:"title"`
	// Owner is the name of the process that owns the window.
	Owner string `yaml:"owner" json:"owner"`
	// Frame is the window's on-screen rectangle in logical global
	// coordinates.
	Frame geom.Rect `yaml:"frame" json:"frame"`
	// Scale is the physical-per-logical pixel ratio of the display the
	// window is on (1 on standard displays, 2 or 3 on high-density).
	Scale float64 `yaml:"scale" json:"scale"`
}

// ToGlobal maps a physical pixel coordinate local to a capture of this
// window into a logical global screen coordinate.
func (w WindowHandle) ToGlobal(local geom.Point) geom.Point {
	return geom.ToGlobal(local, w.Frame.Origin(), w.Scale)
}
