package platform

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// Key names a non-character key or modifier for key-down/up events.
// Character input goes through InputBackend.TypeRune instead, which
// honors the active keyboard layout.
type Key string

const (
	KeyReturn    Key = "return"
	KeyTab       Key = "tab"
	KeySpace     Key = "space"
	KeyEscape    Key = "escape"
	KeyDelete    Key = "delete"
	KeyUpArrow   Key = "up"
	KeyDownArrow Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyShift     Key = "shift"
	KeyControl   Key = "control"
	KeyOption    Key = "option"
	KeyCommand   Key = "command"
)

// ParseKey converts a string flag value to a Key.
func ParseKey(s string) (Key, error) {
	switch k := Key(strings.ToLower(strings.TrimSpace(s))); k {
	case KeyReturn, KeyTab, KeySpace, KeyEscape, KeyDelete,
		KeyUpArrow, KeyDownArrow, KeyLeft, KeyRight,
		KeyShift, KeyControl, KeyOption, KeyCommand:
		return k, nil
	case "enter":
		return KeyReturn, nil
	case "cmd", "meta":
		return KeyCommand, nil
	case "ctrl":
		return KeyControl, nil
	case "alt", "opt":
		return KeyOption, nil
	default:
		// Single letters and digits name the physical key, for use in
		// modifier chords like control+command+t.
		if len(k) == 1 && (k[0] >= 'a' && k[0] <= 'z' || k[0] >= '0' && k[0] <= '9') {
			return k, nil
		}
		return "", fmt.Errorf("unknown key: %q", s)
	}
}
