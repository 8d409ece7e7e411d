//go:build darwin

package darwin

import (
	"github.com/pixelbot/pixelbot/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		registry := NewRegistry()
		return &platform.Provider{
			Registry: registry,
			Capturer: NewCapturer(registry),
			Input:    NewInput(),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestScreenRecordingPermission
}
