package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pixelbot/pixelbot/internal/output"
	"github.com/pixelbot/pixelbot/internal/vision"
)

// settleTime is how long to wait after selecting a window before the
// first capture, so window animations and redraws finish.
const settleTime = 800 * time.Millisecond

var findCmd = &cobra.Command{
	Use:   "test_find",
	Short: "Search a template image in a window",
	Long:  "Capture the targeted window, search it for the template image, and print the match rectangle and confidence.",
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().StringP("template", "t", "", "Filename of the template image")
	findCmd.Flags().String("annotate", "", "Write a copy of the capture with the match outlined to this PNG file")
	findCmd.MarkFlagRequired("template")
}

func runFind(cmd *cobra.Command, args []string) error {
	templatePath, _ := cmd.Flags().GetString("template")
	annotatePath, _ := cmd.Flags().GetString("annotate")

	tpl, err := vision.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	b, provider, err := selectedBot(cmd)
	if err != nil {
		return err
	}

	b.Sleep(settleTime)
	m, err := b.Find(tpl)
	if err != nil {
		return err
	}

	if annotatePath != "" {
		win, _ := b.Window()
		shot, err := provider.Capturer.CaptureWindow(win.ID)
		if err != nil {
			return err
		}
		annotated := vision.Annotate(shot.Pixels, m)
		if err := writePNG(annotatePath, annotated); err != nil {
			return err
		}
	}

	return output.Print(m)
}
