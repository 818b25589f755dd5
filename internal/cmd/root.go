// Package cmd provides the CLI commands for ce-autostart.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/veldrin/ce-autostart/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ce-autostart",
	Short: "Attach Cheat Engine to Steam games running under Proton",
	Long: `ce-autostart launches Cheat Engine inside the Proton prefix of the
currently running Steam game (via protonhax), and manages per-game launch
options stored in Steam's localconfig.vdf.

Running with no subcommand detects the running game and launches Cheat
Engine for it.`,
	RunE:          runRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ce-autostart: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search standard locations)")

	rootCmd.AddCommand(launchOptionsCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(refreshCacheCmd)
	rootCmd.AddCommand(menuCmd)
}

// loadConfig loads the tool configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loading config from: %s\n", path)
	return cfg, nil
}
