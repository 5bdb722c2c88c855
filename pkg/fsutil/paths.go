package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the name of the application used in paths
	AppName = "cutter"
)

// GetCacheDir returns the platform-specific cache directory for the application
// On Linux: ~/.cache/cutter/
// On macOS: ~/Library/Caches/cutter/
// On Windows: %LOCALAPPDATA%\cutter\
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

// GetDefaultCloneDir returns where template archives are unpacked when the
// configuration does not say otherwise.
// Format: <cache_dir>/templates/
func GetDefaultCloneDir() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "templates"), nil
}

// ExpandUser replaces a leading "~" with the current user's home directory.
// Paths without it are returned unchanged.
func ExpandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
