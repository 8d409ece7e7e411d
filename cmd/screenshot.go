package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/observability"
	"github.com/pixelbot/pixelbot/internal/platform"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a window to a PNG file",
	Long:  "Capture the targeted window (or the primary display when no window is given) and write it to a PNG file.",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().StringP("file", "f", "", "Filename of the screenshot")
	screenshotCmd.MarkFlagRequired("file")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("window")
	id, _ := cmd.Flags().GetInt("id")
	if name == "" && id == 0 {
		// No window targeted: capture the primary display.
		shot, err := provider.Capturer.CaptureRect(geom.Rect{})
		if err != nil {
			return err
		}
		return writePNG(file, shot.Pixels)
	}

	b, _, err := selectedBot(cmd)
	if err != nil {
		return err
	}
	win, _ := b.Window()
	observability.GetLogger().Info("Screenshoting",
		zap.Int("id", win.ID), zap.String("title", win.Title))

	shot, err := provider.Capturer.CaptureWindow(win.ID)
	if err != nil {
		return err
	}
	return writePNG(file, shot.Pixels)
}
