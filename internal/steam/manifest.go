// Package steam locates and reads the local Steam installation's data
// files: app manifests, the per-user localconfig.vdf, and a cached copy of
// the public app list.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/veldrin/ce-autostart/internal/vdf"
)

// Game is one installed or known Steam application.
type Game struct {
	AppID string
	Name  string
}

// ParseManifest reads an appmanifest_*.acf document (the same KeyValues
// grammar as localconfig.vdf) and extracts the app id and display name.
func ParseManifest(data []byte) (Game, error) {
	tree, err := vdf.Parse(data)
	if err != nil {
		return Game{}, fmt.Errorf("failed to parse manifest: %w", err)
	}

	state, ok := vdf.ChildMap(tree.Root, "AppState")
	if !ok {
		return Game{}, fmt.Errorf("manifest has no AppState block")
	}

	game := Game{}
	if v, ok := state.Get("appid"); ok {
		game.AppID, _ = v.(string)
	}
	if v, ok := state.Get("name"); ok {
		game.Name, _ = v.(string)
	}
	if game.Name == "" {
		return Game{}, fmt.Errorf("manifest has no name field")
	}
	return game, nil
}

// LookupManifest reads the manifest for appID from the steamapps directory
// and returns the game's display name. The second result is false when no
// manifest exists for that app.
func LookupManifest(steamAppsDir, appID string) (string, bool, error) {
	path := filepath.Join(steamAppsDir, fmt.Sprintf("appmanifest_%s.acf", appID))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	game, err := ParseManifest(data)
	if err != nil {
		return "", false, err
	}
	return game.Name, true, nil
}

// ListInstalled enumerates every app manifest in the steamapps directory,
// sorted by name. Unreadable or malformed manifests are skipped.
func ListInstalled(steamAppsDir string) ([]Game, error) {
	matches, err := filepath.Glob(filepath.Join(steamAppsDir, "appmanifest_*.acf"))
	if err != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", err)
	}

	var games []Game
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		game, err := ParseManifest(data)
		if err != nil {
			continue
		}
		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}
