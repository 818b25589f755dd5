package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/veldrin/ce-autostart/internal/config"
	"github.com/veldrin/ce-autostart/internal/protonhax"
	"github.com/veldrin/ce-autostart/internal/steam"
)

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appID, err := protonhax.NewClient().ListRunning()
	if err != nil {
		return err
	}

	if cfg.Steam.LookupEnabled {
		fmt.Println("Looking up game title...")
		lookup := &steam.TitleLookup{
			SteamAppsDir: cfg.SteamAppsDir(),
			Cache:        steam.NewAppListCache(steam.DefaultCacheDir()),
			Warnf:        warnf,
		}
		if title, ok := lookup.Lookup(appID); ok {
			fmt.Printf("Found game: %s\n", title)
		} else {
			fmt.Printf("Could not find game title for app id %s\n", appID)
		}
	}

	return launchCheatEngine(cfg, appID)
}

// launchCheatEngine starts the configured Cheat Engine executable inside
// the Proton prefix of the given game.
func launchCheatEngine(cfg *config.Config, appID string) error {
	exe := config.ExpandHome(cfg.CheatEngine.ExecutablePath)
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("Cheat Engine executable not found at: %s", exe)
	}

	fmt.Printf("Launching Cheat Engine for app id: %s\n", appID)
	fmt.Printf("Using executable: %s\n", exe)
	return protonhax.NewClient().Run(appID, exe)
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
