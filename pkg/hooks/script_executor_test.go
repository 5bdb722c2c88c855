package hooks_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/glorpus-work/cutter/pkg/errors"
	"github.com/glorpus-work/cutter/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Shell hooks are not supported on Windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

func TestScriptExecutor_Run(t *testing.T) {
	skipWithoutShell(t)

	projectDir := t.TempDir()
	script := writeScript(t, "post_gen_project.sh", `#!/bin/sh
echo "hello from $CUTTER_HOOK"
printf '%s' "$CUTTER_VAR_project_slug" > slug.txt
pwd > cwd.txt
`)
	require.NoError(t, os.Chmod(script, 0o644))

	stdout := &bytes.Buffer{}
	executor := &hooks.ScriptExecutor{Stdout: stdout, Stderr: stdout}

	err := executor.Run(context.Background(), script, hooks.Context{
		Hook:       hooks.PostGenProject,
		ProjectDir: projectDir,
		Vars:       map[string]string{"project_slug": "demo"},
	})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hello from post_gen_project")

	slug, err := os.ReadFile(filepath.Join(projectDir, "slug.txt"))
	require.NoError(t, err)
	assert.Equal(t, "demo", string(slug))

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o744), info.Mode().Perm(), "script is made executable")
}

func TestScriptExecutor_NonZeroExit(t *testing.T) {
	skipWithoutShell(t)

	script := writeScript(t, "pre_gen_project.sh", "#!/bin/sh\necho nope >&2\nexit 3\n")
	stderr := &bytes.Buffer{}
	executor := &hooks.ScriptExecutor{Stdout: &bytes.Buffer{}, Stderr: stderr}

	err := executor.Run(context.Background(), script, hooks.Context{
		Hook:       hooks.PreGenProject,
		ProjectDir: t.TempDir(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookExecution)
	assert.Contains(t, stderr.String(), "nope")
}

func TestScriptExecutor_MissingScript(t *testing.T) {
	executor := hooks.NewScriptExecutor()

	err := executor.Run(context.Background(), filepath.Join(t.TempDir(), "gone.sh"), hooks.Context{})

	assert.ErrorIs(t, err, errors.ErrHookLoad)
}
