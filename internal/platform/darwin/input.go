//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>

static int pb_mouse_event(CGEventType type, CGMouseButton button, double x, double y) {
    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), button);
    if (ev == NULL) {
        return -1;
    }
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int pb_key_event(CGKeyCode code, bool down) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, code, down);
    if (ev == NULL) {
        return -1;
    }
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

// Types one Unicode character as a key-down/key-up pair carrying the
// character itself, so the active keyboard layout is honored without a
// character-to-keycode table.
static int pb_type_char(UniChar ch) {
    CGEventRef down = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef up = CGEventCreateKeyboardEvent(NULL, 0, false);
    if (down == NULL || up == NULL) {
        if (down) CFRelease(down);
        if (up) CFRelease(up);
        return -1;
    }
    CGEventKeyboardSetUnicodeString(down, 1, &ch);
    CGEventKeyboardSetUnicodeString(up, 1, &ch);
    CGEventPost(kCGHIDEventTap, down);
    CGEventPost(kCGHIDEventTap, up);
    CFRelease(down);
    CFRelease(up);
    return 0;
}
*/
import "C"
import (
	"fmt"
	"unicode"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/platform"
)

// Input implements platform.InputBackend by posting CGEvents to the
// HID event tap.
type Input struct{}

// NewInput creates a macOS input backend.
func NewInput() *Input {
	return &Input{}
}

// macOS virtual key codes from Carbon Events.h.
var keyCodeMap = map[platform.Key]uint16{
	platform.KeyReturn:    0x24,
	platform.KeyTab:       0x30,
	platform.KeySpace:     0x31,
	platform.KeyDelete:    0x33,
	platform.KeyEscape:    0x35,
	platform.KeyCommand:   0x37,
	platform.KeyShift:     0x38,
	platform.KeyOption:    0x3A,
	platform.KeyControl:   0x3B,
	platform.KeyLeft:      0x7B,
	platform.KeyRight:     0x7C,
	platform.KeyDownArrow: 0x7D,
	platform.KeyUpArrow:   0x7E,

	// ANSI letter and digit keys, for modifier chords. These press the
	// physical key position, not the layout character; plain text goes
	// through TypeRune.
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05,
	"z": 0x06, "x": 0x07, "c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C,
	"w": 0x0D, "e": 0x0E, "r": 0x0F, "y": 0x10, "t": 0x11, "o": 0x1F,
	"u": 0x20, "i": 0x22, "p": 0x23, "l": 0x25, "j": 0x26, "k": 0x28,
	"n": 0x2D, "m": 0x2E,
	"1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17,
	"9": 0x19, "7": 0x1A, "8": 0x1C, "0": 0x1D,
}

func (in *Input) MouseMove(p geom.Point) error {
	if C.pb_mouse_event(C.kCGEventMouseMoved, C.kCGMouseButtonLeft, C.double(p.X), C.double(p.Y)) != 0 {
		return fmt.Errorf("move to (%d, %d): %w", p.X, p.Y, platform.ErrInjectionFailed)
	}
	return nil
}

func (in *Input) MouseDown(b platform.MouseButton, p geom.Point) error {
	t, btn := mouseEventTypes(b)
	if C.pb_mouse_event(t.down, btn, C.double(p.X), C.double(p.Y)) != 0 {
		return fmt.Errorf("button down at (%d, %d): %w", p.X, p.Y, platform.ErrInjectionFailed)
	}
	return nil
}

func (in *Input) MouseUp(b platform.MouseButton, p geom.Point) error {
	t, btn := mouseEventTypes(b)
	if C.pb_mouse_event(t.up, btn, C.double(p.X), C.double(p.Y)) != 0 {
		return fmt.Errorf("button up at (%d, %d): %w", p.X, p.Y, platform.ErrInjectionFailed)
	}
	return nil
}

func (in *Input) KeyDown(k platform.Key) error {
	code, ok := keyCodeMap[k]
	if !ok {
		return fmt.Errorf("key %q: %w", k, platform.ErrUnsupportedCharacter)
	}
	if C.pb_key_event(C.CGKeyCode(code), true) != 0 {
		return fmt.Errorf("key down %q: %w", k, platform.ErrInjectionFailed)
	}
	return nil
}

func (in *Input) KeyUp(k platform.Key) error {
	code, ok := keyCodeMap[k]
	if !ok {
		return fmt.Errorf("key %q: %w", k, platform.ErrUnsupportedCharacter)
	}
	if C.pb_key_event(C.CGKeyCode(code), false) != 0 {
		return fmt.Errorf("key up %q: %w", k, platform.ErrInjectionFailed)
	}
	return nil
}

// TypeRune types one character via the Unicode-string event path.
// Control characters other than tab have no character event, and runes
// beyond the BMP would need a surrogate pair the single-UniChar event
// cannot carry; both are unsupported. Newline is the caller's concern
// (Bot.Writeln presses Return instead).
func (in *Input) TypeRune(r rune) error {
	if (r != '\t' && unicode.IsControl(r)) || r > 0xFFFF {
		return fmt.Errorf("rune %q: %w", r, platform.ErrUnsupportedCharacter)
	}
	if C.pb_type_char(C.UniChar(r)) != 0 {
		return fmt.Errorf("type rune %q: %w", r, platform.ErrInjectionFailed)
	}
	return nil
}

type eventTypes struct {
	down C.CGEventType
	up   C.CGEventType
}

func mouseEventTypes(b platform.MouseButton) (eventTypes, C.CGMouseButton) {
	switch b {
	case platform.MouseRight:
		return eventTypes{C.kCGEventRightMouseDown, C.kCGEventRightMouseUp}, C.kCGMouseButtonRight
	case platform.MouseMiddle:
		return eventTypes{C.kCGEventOtherMouseDown, C.kCGEventOtherMouseUp}, C.kCGMouseButtonCenter
	default:
		return eventTypes{C.kCGEventLeftMouseDown, C.kCGEventLeftMouseUp}, C.kCGMouseButtonLeft
	}
}
