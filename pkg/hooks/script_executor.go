package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/errors"
	"github.com/glorpus-work/cutter/pkg/fsutil"
)

// Environment variables handed to external hook scripts.
const (
	EnvHook        = "CUTTER_HOOK"
	EnvTemplateDir = "CUTTER_TEMPLATE_DIR"
	EnvProjectDir  = "CUTTER_PROJECT_DIR"
	EnvVarPrefix   = "CUTTER_VAR_"
)

// ScriptExecutor runs hook scripts as separate processes. The script is made
// executable first and started directly, so it needs a shebang line.
type ScriptExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewScriptExecutor creates an executor that forwards script output to the
// current process's stdout and stderr.
func NewScriptExecutor() *ScriptExecutor {
	return &ScriptExecutor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes script in hctx.ProjectDir. A non-zero exit fails the hook.
func (e *ScriptExecutor) Run(ctx context.Context, script string, hctx Context) error {
	if err := fsutil.MakeExecutable(script); err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "failed to make %s executable: %v", script, err)
	}

	logger.Debug("Executing hook script", logger.Fields{"hook": hctx.Hook, "script": script})

	cmd := exec.CommandContext(ctx, script)
	cmd.Dir = hctx.ProjectDir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Env = append(os.Environ(),
		EnvHook+"="+string(hctx.Hook),
		EnvTemplateDir+"="+hctx.TemplateDir,
		EnvProjectDir+"="+hctx.ProjectDir,
	)
	for k, v := range hctx.Vars {
		cmd.Env = append(cmd.Env, EnvVarPrefix+k+"="+v)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s: %w", hctx.Hook, errors.ErrHookExecution, script, err)
	}
	return nil
}
