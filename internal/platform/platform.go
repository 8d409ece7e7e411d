// Package platform defines the narrow interfaces through which the
// automation core consumes the OS window server and input injection,
// plus the error taxonomy those boundaries surface. Concrete backends
// live in per-OS subpackages and register themselves via init().
package platform

import (
	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/model"
)

// WindowRegistry enumerates windows from the OS window server into
// immutable snapshots. Queries are read-only against live OS state;
// results are point-in-time and not guaranteed stable across calls.
type WindowRegistry interface {
	// Enumerate returns all on-screen windows in front-to-back
	// (z-order) presentation order.
	Enumerate() ([]model.WindowHandle, error)

	// FindByName returns the windows whose title contains pattern as a
	// substring, or matches it as a regular expression when useRegex is
	// set. Returns ErrWindowNotFound when nothing matches. Order
	// follows Enumerate, so the first entry is the front-most match.
	FindByName(pattern string, useRegex bool) ([]model.WindowHandle, error)

	// FindByID returns the window with the given window number, or
	// ErrWindowNotFound if no window currently has that id.
	FindByID(id int) (model.WindowHandle, error)
}

// Capturer grabs pixel buffers from the screen.
type Capturer interface {
	// CaptureWindow captures the window with the given id at its
	// current on-screen frame. The frame is re-queried at capture time;
	// a handle's cached frame is never trusted verbatim. Returns
	// ErrStaleTarget if the window no longer exists and
	// ErrPermissionDenied if the OS refuses screen-recording access.
	CaptureWindow(id int) (*model.CapturedImage, error)

	// CaptureRect captures an arbitrary screen rectangle in logical
	// global coordinates. An empty rect captures the primary display.
	CaptureRect(r geom.Rect) (*model.CapturedImage, error)
}

// InputBackend posts synthetic pointer and keyboard events to the OS.
// All operations are synchronous, none are idempotent, and events reach
// the OS in exactly the order issued. A backend represents exclusive
// access to the machine's input devices: at most one owner may drive it
// at a time, enforced by ownership rather than internal locking.
type InputBackend interface {
	MouseMove(p geom.Point) error
	MouseDown(b MouseButton, p geom.Point) error
	MouseUp(b MouseButton, p geom.Point) error
	KeyDown(k Key) error
	KeyUp(k Key) error
	// TypeRune emits a key-down/key-up pair producing the given
	// character under the active keyboard layout. Returns
	// ErrUnsupportedCharacter for runes the layout cannot produce.
	TypeRune(r rune) error
}
