package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/observability"
	"github.com/pixelbot/pixelbot/internal/platform"
	"github.com/pixelbot/pixelbot/internal/vision"
)

var previewCmd = &cobra.Command{
	Use:   "test_preview",
	Short: "Scripted automation demo against the Preview app",
	Long: `Run a scripted demo against a Preview window showing the Wikipedia logo:
activate the window, locate the template, drag across it, open the
annotation toolbar with control+command+T, type some text, and click
the located image again.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("template", "t", "testdata/W.png", "Filename of the template image")
}

func runPreview(cmd *cobra.Command, args []string) error {
	templatePath, _ := cmd.Flags().GetString("template")
	tpl, err := vision.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	b, _, err := selectedBot(cmd)
	if err != nil {
		return err
	}
	log := observability.GetLogger()

	if err := b.ActivateWindow(); err != nil {
		return err
	}
	b.Sleep(settleTime)

	// Drag from the template's top-left corner to its bottom-right.
	m, err := b.Find(tpl)
	if err != nil {
		return err
	}
	if err := b.MouseDownOn(geom.Point{X: m.Rect.X, Y: m.Rect.Y}); err != nil {
		return err
	}
	b.Sleep(settleTime)
	if err := b.MouseUpOn(geom.Point{X: m.Rect.X + m.Rect.Width, Y: m.Rect.Y + m.Rect.Height}); err != nil {
		return err
	}
	b.Sleep(settleTime)

	// control+command+T toggles Preview's markup toolbar.
	if err := b.KeyDown(platform.KeyControl); err != nil {
		return err
	}
	if err := b.KeyDown(platform.KeyCommand); err != nil {
		return err
	}
	if err := b.KeyClick(platform.Key("t")); err != nil {
		return err
	}
	if err := b.KeyUp(platform.KeyCommand); err != nil {
		return err
	}
	if err := b.KeyUp(platform.KeyControl); err != nil {
		return err
	}
	b.Sleep(settleTime)

	if err := b.Write("pixelbot"); err != nil {
		return err
	}
	b.Sleep(settleTime)

	if _, err := b.ClickOnImage(tpl, 0); err != nil {
		if errors.Is(err, vision.ErrNotFound) {
			log.Warn("Failed to find and click on template", zap.String("template", tpl.Name()))
			return nil
		}
		return err
	}
	return nil
}
