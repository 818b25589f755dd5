package steam

// TitleLookup resolves an app id to a game title, preferring the local
// app manifest and falling back to the cached Steam app list. A stale
// cache is refreshed first; a failed refresh degrades to whatever cache
// exists rather than failing the lookup.
type TitleLookup struct {
	SteamAppsDir string
	Cache        *AppListCache

	// Warnf receives non-fatal lookup problems. Nil means silent.
	Warnf func(format string, args ...any)
}

// Lookup returns the title for appID. The second result is false when the
// app is unknown to both the local manifests and the app-list cache.
func (l *TitleLookup) Lookup(appID string) (string, bool) {
	if l.SteamAppsDir != "" {
		name, found, err := LookupManifest(l.SteamAppsDir, appID)
		if err != nil {
			l.warnf("could not read manifest for %s: %v", appID, err)
		} else if found {
			return name, true
		}
	}

	if l.Cache == nil {
		return "", false
	}
	if !l.Cache.Valid() {
		if _, err := l.Cache.Refresh(); err != nil {
			l.warnf("failed to update Steam app cache: %v", err)
		}
	}
	return l.Cache.Lookup(appID)
}

func (l *TitleLookup) warnf(format string, args ...any) {
	if l.Warnf != nil {
		l.Warnf(format, args...)
	}
}
