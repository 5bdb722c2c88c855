package cli

import (
	"errors"
	"fmt"

	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/fsutil"
	"github.com/spf13/cobra"
)

// NewRmCmd creates the rm command.
func NewRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm PATH...",
		Short: "Remove directory trees",
		Long: `Remove each PATH and everything below it.

Read-only files and directories are made writable and removed as well.
Symbolic links are removed, never followed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				if err := fsutil.Rmtree(path); err != nil {
					errs = append(errs, err)
					continue
				}
				logger.Debug("Removed", logger.Fields{"path": path})
			}
			return errors.Join(errs...)
		},
	}

	return cmd
}

// NewMkdirCmd creates the mkdir command.
func NewMkdirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir PATH...",
		Short: "Make sure directories exist",
		Long:  "Create each PATH and its missing parents. Existing paths are left alone.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var failed []string
			for _, path := range args {
				if !fsutil.MakeSurePathExists(path) {
					failed = append(failed, path)
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("could not create %v", failed)
			}
			return nil
		},
	}

	return cmd
}

// NewChmodExecCmd creates the chmod-exec command.
func NewChmodExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chmod-exec FILE...",
		Short: "Make files executable by their owner",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				if err := fsutil.MakeExecutable(path); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}

	return cmd
}
