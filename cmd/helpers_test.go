package cmd

import (
	"strconv"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pixelbot/pixelbot/internal/bot"
)

func newFlagCmd(window string, id int) *cobra.Command {
	c := &cobra.Command{}
	c.Flags().StringP("window", "w", "", "")
	c.Flags().IntP("id", "i", 0, "")
	if window != "" {
		c.Flags().Set("window", window)
	}
	if id != 0 {
		c.Flags().Set("id", strconv.Itoa(id))
	}
	return c
}

func TestWindowSelector(t *testing.T) {
	tests := []struct {
		name    string
		window  string
		id      int
		want    bot.Selector
		wantErr bool
	}{
		{"by name", "Preview", 0, bot.ByName("Preview"), false},
		{"by regex", `~\.png$`, 0, bot.ByNameRegex(`\.png$`), false},
		{"by id", "", 42, bot.ByID(42), false},
		{"neither", "", 0, bot.Selector{}, true},
		{"both", "Preview", 42, bot.Selector{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := windowSelector(newFlagCmd(tt.window, tt.id))
			if (err != nil) != tt.wantErr {
				t.Fatalf("windowSelector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("windowSelector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"window":    "Preview",
		"id":        float64(42),
		"threshold": 0.9,
		"enter":     true,
	}

	if got := stringParam(params, "window", ""); got != "Preview" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("stringParam default = %q", got)
	}
	if got := intParam(params, "id", 0); got != 42 {
		t.Errorf("intParam = %d", got)
	}
	if got := intParam(params, "missing", 7); got != 7 {
		t.Errorf("intParam default = %d", got)
	}
	if got := float64Param(params, "threshold", 0); got != 0.9 {
		t.Errorf("float64Param = %v", got)
	}
	if got := boolParam(params, "enter", false); !got {
		t.Error("boolParam = false")
	}
	if got := boolParam(params, "missing", true); !got {
		t.Error("boolParam default = false")
	}
}
