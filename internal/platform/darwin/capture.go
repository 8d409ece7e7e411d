//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    unsigned char *data;   // BGRA pixel data, caller frees
    size_t         length;
    size_t         width;  // physical pixels
    size_t         height;
    size_t         stride; // bytes per row
} pb_capture;

// Captures the window's current content at best (physical) resolution.
// Returns 0 on success, -1 on failure.
static int pb_capture_window(int32_t wid, pb_capture *out) {
    CGImageRef img = CGWindowListCreateImage(
        CGRectNull,
        kCGWindowListOptionIncludingWindow,
        (CGWindowID)wid,
        kCGWindowImageBestResolution
            | kCGWindowImageBoundsIgnoreFraming
            | kCGWindowImageShouldBeOpaque);
    if (img == NULL) {
        return -1;
    }

    CGDataProviderRef provider = CGImageGetDataProvider(img);
    CFDataRef cfdata = provider != NULL ? CGDataProviderCopyData(provider) : NULL;
    if (cfdata == NULL) {
        CGImageRelease(img);
        return -1;
    }

    size_t length = CFDataGetLength(cfdata);
    out->data = malloc(length);
    memcpy(out->data, CFDataGetBytePtr(cfdata), length);
    out->length = length;
    out->width = CGImageGetWidth(img);
    out->height = CGImageGetHeight(img);
    out->stride = CGImageGetBytesPerRow(img);

    CFRelease(cfdata);
    CGImageRelease(img);
    return 0;
}
*/
import "C"
import (
	"fmt"
	"image"
	"unsafe"

	"github.com/kbinani/screenshot"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/model"
	"github.com/pixelbot/pixelbot/internal/platform"
)

// Capturer implements platform.Capturer for macOS. Window capture goes
// through CGWindowListCreateImage; arbitrary screen rectangles go
// through the screenshot library, which handles multi-display bounds.
type Capturer struct {
	registry *Registry
}

// NewCapturer creates a macOS capturer backed by the given registry.
func NewCapturer(registry *Registry) *Capturer {
	return &Capturer{registry: registry}
}

// CaptureWindow captures the window's pixels at its current frame. The
// frame is re-queried from the window server at capture time, so the
// result reflects where the window is now, not where a possibly stale
// handle last saw it.
func (c *Capturer) CaptureWindow(id int) (*model.CapturedImage, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, err
	}

	// Re-validate against live state first: a vanished window is an
	// expected failure, not a capture artifact.
	win, err := c.registry.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("window %d vanished before capture: %w", id, platform.ErrStaleTarget)
	}

	var cap C.pb_capture
	if C.pb_capture_window(C.int32_t(id), &cap) != 0 {
		return nil, fmt.Errorf("window %d vanished during capture: %w", id, platform.ErrStaleTarget)
	}
	defer C.free(unsafe.Pointer(cap.data))

	raw := unsafe.Slice((*byte)(unsafe.Pointer(cap.data)), int(cap.length))
	pixels := bgraToRGBA(raw, int(cap.width), int(cap.height), int(cap.stride))

	shot := &model.CapturedImage{
		Pixels: pixels,
		Frame:  win.Frame,
		Scale:  win.Scale,
	}
	// The buffer can come back at a different backing scale than the
	// display-mode detection guessed; trust the buffer's geometry.
	shot.ReconcileScale()
	return shot, nil
}

// CaptureRect captures an arbitrary screen rectangle in logical global
// coordinates. An empty rect captures the whole primary display.
func (c *Capturer) CaptureRect(r geom.Rect) (*model.CapturedImage, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, err
	}

	if r.Empty() {
		bounds := screenshot.GetDisplayBounds(0)
		r = geom.Rect{X: bounds.Min.X, Y: bounds.Min.Y, Width: bounds.Dx(), Height: bounds.Dy()}
	}

	img, err := screenshot.CaptureRect(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height))
	if err != nil {
		return nil, fmt.Errorf("capture rect %+v: %w", r, err)
	}

	scale := 1.0
	if r.Width > 0 {
		scale = float64(img.Bounds().Dx()) / float64(r.Width)
	}
	return &model.CapturedImage{Pixels: img, Frame: r, Scale: scale}, nil
}

// bgraToRGBA converts the window server's BGRA buffer into an
// *image.RGBA, dropping any row padding beyond width*4. The stride can
// exceed the row width; the trailing bytes carry no pixel data.
func bgraToRGBA(raw []byte, width, height, stride int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := y * stride
		dst := y * out.Stride
		for x := 0; x < width; x++ {
			b := raw[src+x*4]
			g := raw[src+x*4+1]
			r := raw[src+x*4+2]
			a := raw[src+x*4+3]
			out.Pix[dst+x*4] = r
			out.Pix[dst+x*4+1] = g
			out.Pix[dst+x*4+2] = b
			out.Pix[dst+x*4+3] = a
		}
	}
	return out
}
