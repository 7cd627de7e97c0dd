package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "worlddb"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/worlddb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/worlddb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/worlddb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/worlddb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file
// describing remote dataset locations.
// Returns ~/.config/worlddb/sources.yaml by default.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}
