package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// RemoveFunc is a single filesystem operation applied to one path, such as
// os.Remove or a directory listing. It is what an ErrorHandler retries.
type RemoveFunc func(path string) error

// ErrorHandler is called when an operation of RemoveTree fails with a
// permission error. It receives the failing operation, the path it failed on
// and the original error, and returns the outcome of its own recovery attempt.
type ErrorHandler func(op RemoveFunc, path string, err error) error

// ForceDelete makes path writable and calls retry on it once.
// It is the ErrorHandler behind Rmtree, the equivalent of `rm -rf`.
//
// Directories are also given owner read and execute so they can be listed.
// On Unix the right to unlink an entry belongs to its parent directory, so a
// parent lacking owner write or execute is opened up for the retry and set
// back to its previous mode afterwards. Errors from the chmod calls are
// returned as they come from the operating system.
func ForceDelete(retry RemoveFunc, path string, _ error) (err error) {
	restore, err := grantParentAccess(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, restore())
	}()

	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	// chmod would follow the link; the link itself needs nothing.
	if info.Mode()&fs.ModeSymlink == 0 {
		mode := chmodBits(info.Mode()) | OwnerWrite
		if info.IsDir() {
			mode |= OwnerAll
		}
		if err := os.Chmod(path, mode); err != nil {
			return err
		}
	}

	return retry(path)
}

// Rmtree removes path and everything beneath it. Entries that cannot be
// removed because of their permissions are retried once through ForceDelete.
// Unlike os.RemoveAll, a missing path is an error.
func Rmtree(path string) error {
	return RemoveTree(path, ForceDelete)
}

// RemoveTree removes path and everything beneath it, depth first, without
// following symlinks. Each operation that fails with fs.ErrPermission is
// handed to onError once; any other failure, or a nil onError, ends the walk
// with that error and may leave the tree partially removed.
func RemoveTree(path string, onError ErrorHandler) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	return removeEntry(path, info.IsDir(), onError)
}

func removeEntry(path string, isDir bool, onError ErrorHandler) error {
	if isDir {
		var entries []fs.DirEntry
		list := func(dir string) error {
			var err error
			entries, err = os.ReadDir(dir)
			return err
		}
		if err := attempt(list, path, onError); err != nil {
			return err
		}

		for _, entry := range entries {
			if err := removeEntry(filepath.Join(path, entry.Name()), entry.IsDir(), onError); err != nil {
				return err
			}
		}
	}

	return attempt(os.Remove, path, onError)
}

// attempt runs op and routes a permission failure through onError.
func attempt(op RemoveFunc, path string, onError ErrorHandler) error {
	err := op(path)
	if err == nil || onError == nil || !errors.Is(err, fs.ErrPermission) {
		return err
	}
	return onError(op, path, err)
}

// grantParentAccess gives the parent of path owner write and execute and
// returns a function that puts back the mode it had before.
func grantParentAccess(path string) (func() error, error) {
	noop := func() error { return nil }

	parent := filepath.Dir(path)
	info, err := os.Stat(parent)
	if err != nil {
		return noop, err
	}

	const need = OwnerWrite | OwnerExec
	if info.Mode().Perm()&need == need {
		return noop, nil
	}

	previous := chmodBits(info.Mode())
	if err := os.Chmod(parent, previous|need); err != nil {
		return noop, err
	}
	return func() error { return os.Chmod(parent, previous) }, nil
}

// chmodBits keeps the parts of a mode that os.Chmod honours.
func chmodBits(mode fs.FileMode) fs.FileMode {
	return mode & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
}
