package hooks

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/cutter/internal/logger"
	cerrors "github.com/glorpus-work/cutter/pkg/errors"
	"github.com/glorpus-work/cutter/pkg/fsutil"
)

// Runner finds the scripts for a hook in a template and runs them inside the
// project directory.
type Runner struct {
	// Tengo runs scripts with the .tengo extension.
	Tengo Executor
	// Script runs every other script.
	Script Executor
	// DeleteProjectOnFailure removes the project directory when a hook fails.
	DeleteProjectOnFailure bool
	// Timeout bounds a whole RunHook call when positive.
	Timeout time.Duration
}

// NewRunner creates a Runner with the default executors.
func NewRunner(deleteProjectOnFailure bool, timeout time.Duration) *Runner {
	return &Runner{
		Tengo:                  NewTengoExecutor(),
		Script:                 NewScriptExecutor(),
		DeleteProjectOnFailure: deleteProjectOnFailure,
		Timeout:                timeout,
	}
}

// RunHook runs the scripts of hook found in templateDir/hooks with projectDir
// as the working directory, stopping at the first failure. The previous
// working directory is restored afterwards. Having no scripts for the hook is
// not an error.
func (r *Runner) RunHook(ctx context.Context, hook Hook, templateDir, projectDir string, vars map[string]string) error {
	if hook == "" {
		return cerrors.ErrHookNameEmpty
	}

	// Paths are resolved now because the working directory changes below.
	templateDir, err := filepath.Abs(templateDir)
	if err != nil {
		return cerrors.Wrapf(err, "failed to resolve template directory")
	}
	projectDir, err = filepath.Abs(projectDir)
	if err != nil {
		return cerrors.Wrapf(err, "failed to resolve project directory")
	}

	scripts, err := FindHook(filepath.Join(templateDir, HooksDirName), hook)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		logger.Debug("No hook scripts found", logger.Fields{"hook": hook, "template": templateDir})
		return nil
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	hctx := Context{
		Hook:        hook,
		TemplateDir: templateDir,
		ProjectDir:  projectDir,
		Vars:        vars,
	}

	err = fsutil.WorkIn(projectDir, func() error {
		for _, script := range scripts {
			if err := r.executorFor(script).Run(ctx, script, hctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		logger.Debug("Hook finished", logger.Fields{"hook": hook, "scripts": len(scripts)})
		return nil
	}

	logger.Error("Hook failed", logger.Fields{"hook": hook, "error": err})

	if r.DeleteProjectOnFailure {
		if rmErr := fsutil.Rmtree(projectDir); rmErr != nil {
			return errors.Join(err, cerrors.Wrapf(rmErr, "failed to remove project %s", projectDir))
		}
		logger.Info("Removed project after hook failure", logger.Fields{"project": projectDir})
	}

	return err
}

func (r *Runner) executorFor(script string) Executor {
	if strings.EqualFold(filepath.Ext(script), TengoExtension) {
		return r.Tengo
	}
	return r.Script
}
