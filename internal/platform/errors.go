package platform

import "errors"

var (
	// ErrWindowNotFound implies no window matched the requested name,
	// regex, or id.
	ErrWindowNotFound = errors.New("window not found")

	// ErrStaleTarget implies a window handle refers to a window that no
	// longer exists on screen.
	ErrStaleTarget = errors.New("window is gone or invalid")

	// ErrPermissionDenied implies the OS refused screen-recording or
	// input access.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupportedCharacter implies a character cannot be produced by
	// the active keyboard layout.
	ErrUnsupportedCharacter = errors.New("unsupported character")

	// ErrInjectionFailed implies the OS rejected a synthetic input event.
	ErrInjectionFailed = errors.New("input injection failed")
)
