package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pixelbot/pixelbot/internal/action"
	"github.com/pixelbot/pixelbot/internal/bot"
	"github.com/pixelbot/pixelbot/internal/observability"
	"github.com/pixelbot/pixelbot/internal/platform"
)

// windowSelector builds a selector from the persistent -w/-i flags.
func windowSelector(cmd *cobra.Command) (bot.Selector, error) {
	name, _ := cmd.Flags().GetString("window")
	id, _ := cmd.Flags().GetInt("id")
	switch {
	case name != "" && id != 0:
		return bot.Selector{}, fmt.Errorf("--window and --id are mutually exclusive")
	case name != "":
		return bot.ParseNameSelector(name), nil
	case id != 0:
		return bot.ByID(id), nil
	default:
		return bot.Selector{}, fmt.Errorf("window name or id required (use --window or --id)")
	}
}

// newBot wires the platform provider into a fresh bot using the loaded
// configuration.
func newBot() (*bot.Bot, *platform.Provider, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, nil, err
	}
	log := observability.GetLogger()
	ctrl := action.NewController(provider.Input,
		action.WithEventDelay(time.Duration(cfg.EventDelayMs)*time.Millisecond),
		action.WithLogger(log))
	b := bot.New(provider.Registry, provider.Capturer, ctrl,
		bot.WithThreshold(cfg.Threshold),
		bot.WithCaptureFrequency(cfg.CaptureFrequency),
		bot.WithLogger(log))
	return b, provider, nil
}

// selectedBot resolves the window flags and returns a bot with that
// window selected.
func selectedBot(cmd *cobra.Command) (*bot.Bot, *platform.Provider, error) {
	sel, err := windowSelector(cmd)
	if err != nil {
		return nil, nil, err
	}
	b, provider, err := newBot()
	if err != nil {
		return nil, nil, err
	}
	if err := b.SetWindow(sel); err != nil {
		return nil, nil, err
	}
	return b, provider, nil
}

// writePNG writes an image to a file, creating or truncating it.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
