package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelbot/pixelbot/internal/config"
	"github.com/pixelbot/pixelbot/internal/observability"
	"github.com/pixelbot/pixelbot/internal/output"
	"github.com/pixelbot/pixelbot/internal/platform"
	_ "github.com/pixelbot/pixelbot/internal/platform/darwin" // register macOS backends
	"github.com/pixelbot/pixelbot/internal/version"
)

// cfg is the loaded configuration, available to all subcommands after
// PersistentPreRunE has run.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "pixelbot",
	Short: "Find images in application windows and drive synthetic input",
	Long:  "A CLI tool that locates a template image inside an application window by pixel matching, then clicks, types, and drags at the matched location.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().StringP("window", "w", "", "Name of the window to target (prefix with ~ for regexp)")
	rootCmd.PersistentFlags().IntP("id", "i", 0, "Id of the window to target")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json, table")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./pixelbot.yaml)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = *loaded
		observability.InitializeLogger(cfg.Logger)

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format != "" {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			output.OutputFormat = f
		}

		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}
		return nil
	}
}
