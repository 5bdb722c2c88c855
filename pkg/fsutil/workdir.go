package fsutil

import (
	"errors"
	"os"
)

// DirGuard remembers the working directory that was current before EnterDir
// and puts it back on Restore.
//
// The working directory belongs to the whole process. Guards must be restored
// in the reverse order they were entered, from a single goroutine.
type DirGuard struct {
	previous string
	restored bool
}

// EnterDir records the current working directory and changes into dir.
// An empty dir leaves the working directory alone; the guard still restores
// the recorded one. On error the working directory is unchanged.
func EnterDir(dir string) (*DirGuard, error) {
	previous, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	if dir != "" {
		if err := os.Chdir(dir); err != nil {
			return nil, err
		}
	}

	return &DirGuard{previous: previous}, nil
}

// Previous returns the directory Restore will change back to.
func (g *DirGuard) Previous() string {
	return g.previous
}

// Restore changes back to the directory recorded by EnterDir.
// Only the first call does anything.
func (g *DirGuard) Restore() error {
	if g == nil || g.restored {
		return nil
	}
	g.restored = true
	return os.Chdir(g.previous)
}

// WorkIn runs fn with dir as the working directory and restores the previous
// one afterwards, also when fn returns an error or panics. fn is not called if
// dir cannot be entered.
func WorkIn(dir string, fn func() error) (err error) {
	guard, err := EnterDir(dir)
	if err != nil {
		return err
	}

	defer func() {
		if restoreErr := guard.Restore(); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
	}()

	return fn()
}
