// coindash is a three-level coin collecting platformer.
//
// Usage:
//
//	coindash [play]      - Play from level 1 (or --level N)
//	coindash scores      - Show the best recorded runs
//	coindash settings    - Show or change audio settings
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/coindash/storage"
)

var (
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coindash",
	Short: "Coin Dash - collect every coin, avoid the lava",
	Long: `Coin Dash is a side-scrolling platformer with three levels.
Collect every coin on a level to advance; touching lava ends the run.

Controls:
  Left/Right  - Move
  Up          - Jump
  Esc         - Pause`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagDebug)
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging and physics outlines")
	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
}

func setupLogging(debug bool) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "coindash",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
}
