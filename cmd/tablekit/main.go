// Tablekit is a terminal settings app built on a declarative list engine.
//
// Screens describe their rows as a tree of contents, sections and items;
// the list surface materializes only the rows it shows and dispatches taps,
// toggles and edit actions back to them. A companion WebSocket service can
// answer username availability checks for the account screen.
//
// Usage:
//
//	tablekit [command] [flags]
//
// Running without arguments launches the interactive settings screen.
// See 'tablekit --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "Terminal settings built on declarative lists",
	Long: `A terminal settings app built on a declarative list engine.

Every change rebuilds the screen's contents from scratch; the list only
materializes the rows that are visible.

If no command is specified, the interactive settings screen launches.`,
	Version:           version.Get().Version,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "tablekit %s (go: %s)\n", info, info.GoVersion)
	},
}
