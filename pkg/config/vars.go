package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "ccslim"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/ccslim by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/ccslim by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/ccslim/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/ccslim/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// InputPath resolves an input file against DataDir. Absolute paths and
// empty names are returned unchanged.
func (c *Config) InputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// OutputPath returns the path of a derived file in OutputDir.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

// ArchivePath returns the path of the SQLite archive in OutputDir.
func (c *Config) ArchivePath() string {
	return c.OutputPath(AppName + ".sqlite")
}
