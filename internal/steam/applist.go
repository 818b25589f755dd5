package steam

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/ini.v1"
)

// AppListURL is the public Steam API endpoint for the full app list.
const AppListURL = "https://api.steampowered.com/ISteamApps/GetAppList/v1/"

const (
	cacheFileName    = "steam_apps.json"
	metadataFileName = "cache_metadata.ini"
	cacheValidity    = 7 * 24 * time.Hour
)

// AppListCache fetches and caches the Steam app list so app ids can be
// resolved to titles without hitting the network on every run.
type AppListCache struct {
	Dir    string
	URL    string
	Client *http.Client

	now func() time.Time
}

// NewAppListCache creates a cache rooted at dir with a 30-second request
// timeout.
func NewAppListCache(dir string) *AppListCache {
	return &AppListCache{
		Dir:    dir,
		URL:    AppListURL,
		Client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// DefaultCacheDir returns the XDG cache directory for ce-autostart.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cache"
	}
	return filepath.Join(home, ".cache", "ce-autostart")
}

type appListPayload struct {
	AppList struct {
		Apps struct {
			App []appEntry `json:"app"`
		} `json:"apps"`
	} `json:"applist"`
}

type appEntry struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

// Valid reports whether the cached app list exists and is younger than the
// validity window. Any metadata problem counts as invalid.
func (c *AppListCache) Valid() bool {
	meta, err := ini.Load(filepath.Join(c.Dir, metadataFileName))
	if err != nil {
		return false
	}
	raw := meta.Section("").Key("last_update").String()
	lastUpdate, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return c.now().Sub(lastUpdate) < cacheValidity
}

// Refresh fetches the app list and rewrites the cache and its metadata.
// Returns the number of apps cached.
func (c *AppListCache) Refresh() (int, error) {
	resp, err := c.Client.Get(c.URL)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch app list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("app list request returned %s", resp.Status)
	}

	var payload appListPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode app list: %w", err)
	}

	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode app list: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.Dir, cacheFileName), data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write app list cache: %w", err)
	}

	count := len(payload.AppList.Apps.App)
	meta := ini.Empty()
	meta.Section("").Key("last_update").SetValue(c.now().Format(time.RFC3339))
	meta.Section("").Key("app_count").SetValue(strconv.Itoa(count))
	if err := meta.SaveTo(filepath.Join(c.Dir, metadataFileName)); err != nil {
		return 0, fmt.Errorf("failed to write cache metadata: %w", err)
	}
	return count, nil
}

// Lookup resolves appID to a title from the cached app list. The second
// result is false when the cache is missing or the app is unknown.
func (c *AppListCache) Lookup(appID string) (string, bool) {
	id, err := strconv.ParseInt(appID, 10, 64)
	if err != nil {
		return "", false
	}

	data, err := os.ReadFile(filepath.Join(c.Dir, cacheFileName))
	if err != nil {
		return "", false
	}
	var payload appListPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false
	}

	for _, app := range payload.AppList.Apps.App {
		if app.AppID == id && app.Name != "" {
			return app.Name, true
		}
	}
	return "", false
}
