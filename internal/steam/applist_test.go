package steam

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const appListResponse = `{
	"applist": {
		"apps": {
			"app": [
				{"appid": 620, "name": "Portal 2"},
				{"appid": 1228870, "name": "Bloons TD 6"}
			]
		}
	}
}`

func newTestCache(t *testing.T, handler http.HandlerFunc) *AppListCache {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cache := NewAppListCache(t.TempDir())
	cache.URL = server.URL
	cache.Client = server.Client()
	return cache
}

func TestAppListCache_RefreshAndLookup(t *testing.T) {
	cache := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(appListResponse))
	})

	count, err := cache.Refresh()
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if count != 2 {
		t.Errorf("Refresh() count = %d, want 2", count)
	}

	name, ok := cache.Lookup("1228870")
	if !ok || name != "Bloons TD 6" {
		t.Errorf("Lookup(1228870) = %q, %v", name, ok)
	}

	if _, ok := cache.Lookup("999999"); ok {
		t.Error("Lookup() found an unknown app")
	}
	if _, ok := cache.Lookup("not-a-number"); ok {
		t.Error("Lookup() accepted a non-numeric id")
	}
}

func TestAppListCache_Validity(t *testing.T) {
	cache := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(appListResponse))
	})

	if cache.Valid() {
		t.Error("Valid() = true before any refresh")
	}

	if _, err := cache.Refresh(); err != nil {
		t.Fatal(err)
	}
	if !cache.Valid() {
		t.Error("Valid() = false right after refresh")
	}

	// Pretend eight days have passed.
	cache.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	if cache.Valid() {
		t.Error("Valid() = true for a stale cache")
	}
}

func TestAppListCache_RefreshErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusInternalServerError)
			},
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newTestCache(t, tt.handler)
			if _, err := cache.Refresh(); err == nil {
				t.Fatal("Refresh() succeeded, want error")
			}
			if cache.Valid() {
				t.Error("Valid() = true after failed refresh")
			}
		})
	}
}

func TestAppListCache_LookupWithoutCache(t *testing.T) {
	cache := NewAppListCache(t.TempDir())
	if _, ok := cache.Lookup("620"); ok {
		t.Error("Lookup() found something with no cache on disk")
	}
}

func TestTitleLookup(t *testing.T) {
	steamApps := t.TempDir()
	manifest := "\"AppState\"\n{\n\t\"appid\"\t\"620\"\n\t\"name\"\t\"Portal 2 (local)\"\n}\n"
	if err := writeFile(filepath.Join(steamApps, "appmanifest_620.acf"), manifest); err != nil {
		t.Fatal(err)
	}

	cache := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(appListResponse))
	})
	if _, err := cache.Refresh(); err != nil {
		t.Fatal(err)
	}

	lookup := &TitleLookup{SteamAppsDir: steamApps, Cache: cache}

	// Installed game: local manifest wins over the cache.
	if name, ok := lookup.Lookup("620"); !ok || name != "Portal 2 (local)" {
		t.Errorf("Lookup(620) = %q, %v, want manifest title", name, ok)
	}

	// Not installed: falls back to the cached app list.
	if name, ok := lookup.Lookup("1228870"); !ok || name != "Bloons TD 6" {
		t.Errorf("Lookup(1228870) = %q, %v, want cache title", name, ok)
	}

	// Unknown everywhere.
	if _, ok := lookup.Lookup("999999"); ok {
		t.Error("Lookup() found a title for an unknown app")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
