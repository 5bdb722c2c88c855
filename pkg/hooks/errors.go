package hooks

import (
	"github.com/glorpus-work/cutter/pkg/errors"
)

// ErrUnknownHook is returned when a hook name outside ValidHooks is requested.
func ErrUnknownHook(name string) error {
	return errors.Wrapf(errors.ErrHookLoad, "unknown hook %q", name)
}
