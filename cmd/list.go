package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pixelbot/pixelbot/internal/output"
	"github.com/pixelbot/pixelbot/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List on-screen windows",
	Long:  "List on-screen windows front-to-back with their id, title, and owning application.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	windows, err := provider.Registry.Enumerate()
	if err != nil {
		return err
	}

	return output.Print(windows)
}
