package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/veldrin/ce-autostart/internal/config"
	"github.com/veldrin/ce-autostart/internal/steam"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List installed Steam games",
	Long:  `List the app id and title of every game installed in the steamapps directory.`,
	RunE:  runGames,
}

var gamesSteamPath string

func init() {
	gamesCmd.Flags().StringVar(&gamesSteamPath, "steam-path", "", "steamapps directory (default: from config)")
}

func runGames(cmd *cobra.Command, args []string) error {
	dir := gamesSteamPath
	if dir == "" {
		if cfg, _, err := config.Load(cfgFile); err == nil {
			dir = cfg.SteamAppsDir()
		} else {
			dir = config.ExpandHome("~/.local/share/Steam/steamapps")
		}
	}

	games, err := steam.ListInstalled(dir)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Printf("No installed games found in %s\n", dir)
		return nil
	}

	for _, game := range games {
		fmt.Printf("%10s  %s\n", game.AppID, game.Name)
	}
	return nil
}
