//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    int32_t id;
    double  x, y, w, h;
    double  scale;
    char    name[256];
    char    owner[256];
} pb_window_info;

// Copies a CFString dictionary entry into a fixed-size UTF-8 buffer.
// Missing or non-string values leave the buffer empty.
static void pb_copy_string(CFDictionaryRef dict, CFStringRef key, char *buf, size_t len) {
    buf[0] = '\0';
    CFTypeRef value = CFDictionaryGetValue(dict, key);
    if (value == NULL || CFGetTypeID(value) != CFStringGetTypeID()) {
        return;
    }
    CFStringGetCString((CFStringRef)value, buf, len, kCFStringEncodingUTF8);
}

// Returns the physical-per-logical pixel ratio of the display whose
// bounds contain the largest share of the given frame.
static double pb_display_scale(CGRect frame) {
    CGDirectDisplayID displays[16];
    uint32_t count = 0;
    if (CGGetActiveDisplayList(16, displays, &count) != kCGErrorSuccess || count == 0) {
        return 1.0;
    }
    double best_area = -1.0;
    double scale = 1.0;
    for (uint32_t i = 0; i < count; i++) {
        CGRect bounds = CGDisplayBounds(displays[i]);
        CGRect overlap = CGRectIntersection(bounds, frame);
        double area = CGRectIsNull(overlap) ? 0.0 : overlap.size.width * overlap.size.height;
        if (area <= best_area) {
            continue;
        }
        best_area = area;
        CGDisplayModeRef mode = CGDisplayCopyDisplayMode(displays[i]);
        if (mode != NULL) {
            size_t pixels = CGDisplayModeGetPixelWidth(mode);
            size_t points = CGDisplayModeGetWidth(mode);
            if (points > 0) {
                scale = (double)pixels / (double)points;
            }
            CGDisplayModeRelease(mode);
        }
    }
    return scale;
}

// Enumerates on-screen windows front-to-back. Returns the number of
// windows written to *out (caller frees with free()), or -1 when the
// window server query fails.
static int pb_list_windows(pb_window_info **out) {
    CFArrayRef info = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (info == NULL) {
        return -1;
    }

    CFIndex total = CFArrayGetCount(info);
    pb_window_info *list = calloc(total > 0 ? total : 1, sizeof(pb_window_info));
    int n = 0;

    for (CFIndex i = 0; i < total; i++) {
        CFDictionaryRef dict = (CFDictionaryRef)CFArrayGetValueAtIndex(info, i);
        if (dict == NULL) {
            continue;
        }

        CFNumberRef num = (CFNumberRef)CFDictionaryGetValue(dict, kCGWindowNumber);
        int32_t wid = 0;
        if (num == NULL || !CFNumberGetValue(num, kCFNumberSInt32Type, &wid)) {
            continue;
        }

        CFDictionaryRef bounds_dict = (CFDictionaryRef)CFDictionaryGetValue(dict, kCGWindowBounds);
        CGRect frame = CGRectZero;
        if (bounds_dict == NULL || !CGRectMakeWithDictionaryRepresentation(bounds_dict, &frame)) {
            continue;
        }

        pb_window_info *w = &list[n];
        w->id = wid;
        w->x = frame.origin.x;
        w->y = frame.origin.y;
        w->w = frame.size.width;
        w->h = frame.size.height;
        w->scale = pb_display_scale(frame);
        pb_copy_string(dict, kCGWindowName, w->name, sizeof(w->name));
        pb_copy_string(dict, kCGWindowOwnerName, w->owner, sizeof(w->owner));
        n++;
    }

    CFRelease(info);
    *out = list;
    return n;
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/model"
	"github.com/pixelbot/pixelbot/internal/platform"
)

// Registry implements platform.WindowRegistry on top of the macOS
// window server.
type Registry struct{}

// NewRegistry creates a macOS window registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Enumerate returns the on-screen windows in front-to-back z-order, as
// presented by CGWindowListCopyWindowInfo.
func (r *Registry) Enumerate() ([]model.WindowHandle, error) {
	var list *C.pb_window_info
	n := C.pb_list_windows(&list)
	if n < 0 {
		return nil, fmt.Errorf("CGWindowListCopyWindowInfo returned null")
	}
	defer C.free(unsafe.Pointer(list))

	infos := unsafe.Slice(list, int(n))
	windows := make([]model.WindowHandle, 0, int(n))
	for i := range infos {
		w := &infos[i]
		windows = append(windows, model.WindowHandle{
			ID:    int(w.id),
			Title: C.GoString(&w.name[0]),
			Owner: C.GoString(&w.owner[0]),
			Frame: geom.Rect{
				X:      geom.RoundHalfEven(float64(w.x)),
				Y:      geom.RoundHalfEven(float64(w.y)),
				Width:  geom.RoundHalfEven(float64(w.w)),
				Height: geom.RoundHalfEven(float64(w.h)),
			},
			Scale: float64(w.scale),
		})
	}
	return windows, nil
}

// FindByName returns the windows matching pattern, front-most first.
func (r *Registry) FindByName(pattern string, useRegex bool) ([]model.WindowHandle, error) {
	windows, err := r.Enumerate()
	if err != nil {
		return nil, err
	}
	return platform.FilterByName(windows, pattern, useRegex)
}

// FindByID returns the window with the given window number.
func (r *Registry) FindByID(id int) (model.WindowHandle, error) {
	windows, err := r.Enumerate()
	if err != nil {
		return model.WindowHandle{}, err
	}
	return platform.FilterByID(windows, id)
}
