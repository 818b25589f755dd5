package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/veldrin/ce-autostart/internal/vdf"
)

// LaunchOptionsField is the per-app field in localconfig.vdf holding the
// game's launch options.
const LaunchOptionsField = "LaunchOptions"

// RootFromSteamApps returns the Steam installation root for a steamapps
// directory (its parent).
func RootFromSteamApps(steamAppsDir string) string {
	return filepath.Dir(filepath.Clean(steamAppsDir))
}

// LocalConfigPath finds the localconfig.vdf for the Steam installation
// rooted at steamRoot. When several Steam users have config files, the
// most recently modified one is chosen.
func LocalConfigPath(steamRoot string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(steamRoot, "userdata", "*", "config", "localconfig.vdf"))
	if err != nil {
		return "", fmt.Errorf("failed to scan userdata: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no localconfig.vdf found under %s", filepath.Join(steamRoot, "userdata"))
	}

	best := ""
	var bestTime int64
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().UnixNano() > bestTime {
			best = path
			bestTime = info.ModTime().UnixNano()
		}
	}
	if best == "" {
		return "", fmt.Errorf("no readable localconfig.vdf found under %s", filepath.Join(steamRoot, "userdata"))
	}
	return best, nil
}

// AppConfigPath resolves the identifier path from the root of a parsed
// localconfig.vdf down to the per-app mapping for appID:
//
//	UserLocalConfigStore / Software / Valve / Steam / apps / <appID>
//
// Steam's own writes are inconsistent about key casing (Software vs
// software, apps vs Apps), so each fixed segment is matched case-
// insensitively and the path returned uses the keys actually present.
// The appID segment itself is not checked for existence; the editor
// reports that case.
func AppConfigPath(tree *vdf.Tree, appID string) ([]string, error) {
	segments := []string{"UserLocalConfigStore", "Software", "Valve", "Steam", "apps"}

	path := make([]string, 0, len(segments)+1)
	current := tree.Root
	for _, want := range segments {
		actual, child, ok := childFold(current, want)
		if !ok {
			return nil, fmt.Errorf("localconfig.vdf has no %q block under %q", want, strings.Join(path, "/"))
		}
		path = append(path, actual)
		current = child
	}
	return append(path, appID), nil
}

// childFold finds a child mapping by case-insensitive key match, returning
// the key as actually spelled in the document.
func childFold(m *orderedmap.OrderedMap, key string) (string, *orderedmap.OrderedMap, bool) {
	if child, ok := vdf.ChildMap(m, key); ok {
		return key, child, true
	}
	for _, k := range m.Keys() {
		if strings.EqualFold(k, key) {
			if child, ok := vdf.ChildMap(m, k); ok {
				return k, child, true
			}
		}
	}
	return "", nil, false
}
