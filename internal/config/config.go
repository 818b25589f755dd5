// Package config loads the ce-autostart TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the complete ce-autostart configuration.
type Config struct {
	CheatEngine CheatEngineConfig `toml:"cheatengine"`
	Steam       SteamConfig       `toml:"steam"`
	Backup      BackupConfig      `toml:"backup"`
}

// CheatEngineConfig locates the Cheat Engine executable to launch inside
// the game's Proton prefix.
type CheatEngineConfig struct {
	ExecutablePath string `toml:"executable_path"`
}

// SteamConfig configures game-title lookup.
type SteamConfig struct {
	LookupEnabled bool   `toml:"lookup_enabled"`
	SteamPath     string `toml:"steam_path"`
}

// BackupConfig configures where launch-option backups are written.
type BackupConfig struct {
	Dir string `toml:"dir"`
}

// SearchPaths returns the candidate config file locations in priority
// order: the XDG config directory, then the working directory.
func SearchPaths() []string {
	home, err := os.UserHomeDir()
	paths := []string{}
	if err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ce-autostart", "config.toml"))
	}
	return append(paths, "ce-autostart-config.toml", "config.toml")
}

// Load reads the first config file found on the search path. When path is
// non-empty only that file is considered. Returns the parsed config and
// the path it was loaded from.
func Load(path string) (*Config, string, error) {
	candidates := []string{path}
	if path == "" {
		candidates = SearchPaths()
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		cfg, err := loadFile(candidate)
		if err != nil {
			return nil, candidate, err
		}
		return cfg, candidate, nil
	}
	return nil, "", fmt.Errorf("no config file found, checked:\n  %s", strings.Join(candidates, "\n  "))
}

func loadFile(path string) (*Config, error) {
	cfg := &Config{
		Steam: SteamConfig{
			SteamPath: "~/.local/share/Steam/steamapps",
		},
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields required to launch Cheat Engine.
func (c *Config) Validate() error {
	if c.CheatEngine.ExecutablePath == "" {
		return fmt.Errorf("missing 'cheatengine.executable_path' in config file")
	}
	return nil
}

// SteamAppsDir returns the configured steamapps directory with a leading
// ~ expanded.
func (c *Config) SteamAppsDir() string {
	return ExpandHome(c.Steam.SteamPath)
}

// BackupDir returns the configured backup directory, defaulting to the
// XDG data directory.
func (c *Config) BackupDir() string {
	if c.Backup.Dir != "" {
		return ExpandHome(c.Backup.Dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "backups"
	}
	return filepath.Join(home, ".local", "share", "ce-autostart", "backups")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
