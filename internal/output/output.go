// Package output serializes command results to stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pixelbot/pixelbot/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// OutputFormat is the current output format, set by the root command's
// --format flag.
var OutputFormat = FormatTable

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml, json, or table)", s)
	}
}

// Print serializes v to stdout in the current output format. Table
// format only applies to window lists; other values fall back to YAML.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(v)
	case FormatTable:
		if windows, ok := v.([]model.WindowHandle); ok {
			_, err := io.WriteString(os.Stdout, WindowTable(windows))
			return err
		}
		return PrintYAML(v)
	default:
		return PrintYAML(v)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// windowTableColWidth is the column width for the name and owner
// columns; longer names are truncated with an ellipsis.
const windowTableColWidth = 30

// WindowTable renders a window list as the three-column table printed
// by the list command.
func WindowTable(windows []model.WindowHandle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-*s %-*s\n", "Id", windowTableColWidth, "Window Name", windowTableColWidth, "Window Owner Name")
	b.WriteString(strings.Repeat("-", 6+windowTableColWidth*2))
	b.WriteByte('\n')
	for _, w := range windows {
		name := w.Title
		// Truncate on runes so multi-byte titles are never split
		// mid-character.
		if r := []rune(name); len(r) > windowTableColWidth {
			name = string(r[:windowTableColWidth-3]) + "..."
		}
		fmt.Fprintf(&b, "%-6d %-*s %-*s\n", w.ID, windowTableColWidth, name, windowTableColWidth, w.Owner)
	}
	return b.String()
}
