// Package fsutil provides the filesystem helpers cutter uses while laying out
// a project: forced tree removal, directory creation, scoped working
// directories and executable scripts.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/cutter/internal/logger"
)

// EnsureDir creates a directory and all necessary parent directories with default permissions if they don't exist.
// It uses DirModeDefault (0755) permissions for the created directories.
// Returns an error if the directory cannot be created or if the path exists but is not a directory.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// MakeSurePathExists creates path and any missing parents. It reports true
// when the directory was created or when something already occupies path;
// whether that entry is really a directory is not checked. Any other failure
// reports false.
func MakeSurePathExists(path string) bool {
	logger.Debug("Making sure path exists", logger.Fields{"path": path})

	if _, err := os.Lstat(path); err == nil {
		return true
	}

	if err := os.MkdirAll(path, DirModeDefault); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return true
		}
		logger.Debug("Could not create directory", logger.Fields{"path": path, "error": err})
		return false
	}

	logger.Debug("Created directory", logger.Fields{"path": path})
	return true
}
