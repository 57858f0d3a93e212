// Package iofs prepares application directories and checks files used by
// the pipeline.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccslim/ccslim/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// Supported table formats.
const (
	FormatCSV  = ".csv"
	FormatXLSX = ".xlsx"
)

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates a directory with its parents if it does not exist.
func EnsureDir(dir string) error {
	return touchDir(dir)
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// CheckInput makes sure an input file exists and returns its table
// format.
func CheckInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", FileNotFoundError(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case FormatCSV, FormatXLSX:
		return ext, nil
	default:
		return "", UnsupportedFormatError(path)
	}
}

// CheckInputs checks every non-empty path.
func CheckInputs(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := CheckInput(p); err != nil {
			return err
		}
	}
	return nil
}
