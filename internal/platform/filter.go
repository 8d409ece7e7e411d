package platform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pixelbot/pixelbot/internal/model"
)

// FilterByName selects the windows whose title contains pattern as a
// substring, or matches it as a regular expression when useRegex is
// set. The input order is preserved. Backends share this so that name
// resolution behaves identically everywhere, including test fakes.
func FilterByName(windows []model.WindowHandle, pattern string, useRegex bool) ([]model.WindowHandle, error) {
	var matcher func(title string) bool
	if useRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid window name regex %q: %w", pattern, err)
		}
		matcher = re.MatchString
	} else {
		matcher = func(title string) bool { return strings.Contains(title, pattern) }
	}

	var out []model.WindowHandle
	for _, w := range windows {
		if matcher(w.Title) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no window matching %q: %w", pattern, ErrWindowNotFound)
	}
	return out, nil
}

// FilterByID selects the window with the given window number.
func FilterByID(windows []model.WindowHandle, id int) (model.WindowHandle, error) {
	for _, w := range windows {
		if w.ID == id {
			return w, nil
		}
	}
	return model.WindowHandle{}, fmt.Errorf("no window with id %d: %w", id, ErrWindowNotFound)
}
