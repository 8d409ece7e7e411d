//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>
*/
import "C"
import (
	"fmt"

	"github.com/pixelbot/pixelbot/internal/platform"
)

// CheckScreenRecordingPermission reports whether the process has macOS
// screen recording permission. Without it CGWindowListCreateImage
// silently returns window frames without content.
func CheckScreenRecordingPermission() error {
	if C.CGPreflightScreenCaptureAccess() == 0 {
		return fmt.Errorf(
			"screen recording %w\n\n"+
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n"+
				"Add your terminal app, then restart the terminal and try again.",
			platform.ErrPermissionDenied)
	}
	return nil
}

// RequestScreenRecordingPermission triggers the OS permission prompt on
// first run. Safe to call repeatedly; subsequent calls are no-ops.
func RequestScreenRecordingPermission() {
	if C.CGPreflightScreenCaptureAccess() == 0 {
		C.CGRequestScreenCaptureAccess()
	}
}
