// Package darwin implements the platform backends for macOS on top of
// CoreGraphics: window enumeration via CGWindowListCopyWindowInfo,
// window capture via CGWindowListCreateImage, and input injection via
// CGEvent posting to the HID event tap.
//
// The package registers itself with internal/platform through init(),
// so importing it (see cmd/root.go) is all that is needed to make the
// backends available.
package darwin
