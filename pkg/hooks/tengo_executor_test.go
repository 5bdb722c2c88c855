package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glorpus-work/cutter/pkg/errors"
	"github.com/glorpus-work/cutter/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTengoExecutor(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	hctx := hooks.Context{
		Hook:        hooks.PostGenProject,
		TemplateDir: "/templates/demo",
		ProjectDir:  "/work/demo",
		Vars: map[string]string{
			"project_slug": "demo",
		},
	}

	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{
			name:   "valid script that does nothing",
			script: `// nothing to do`,
		},
		{
			name:    "runtime error",
			script:  `non_existent_function()`,
			wantErr: errors.ErrHookExecution,
		},
		{
			name: "context and vars are accessible",
			script: `
context := import("context")
vars := import("vars")

err := ""
if context.hook != "post_gen_project" { err = "hook" }
if context.template_dir != "/templates/demo" { err = "template_dir" }
if context.project_dir != "/work/demo" { err = "project_dir" }
if vars.project_slug != "demo" { err = "project_slug" }
`,
		},
		{
			name:    "err string fails the hook",
			script:  `err := "license not allowed"`,
			wantErr: errors.ErrHookScript,
		},
		{
			name:    "err error object fails the hook",
			script:  `err := error("bad layout")`,
			wantErr: errors.ErrHookScript,
		},
		{
			name:   "empty err string passes",
			script: `err := ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, "post_gen_project.tengo", tt.script)

			err := executor.Run(context.Background(), script, hctx)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTengoExecutor_MissingScript(t *testing.T) {
	err := hooks.NewTengoExecutor().Run(context.Background(), filepath.Join(t.TempDir(), "gone.tengo"), hooks.Context{})

	assert.ErrorIs(t, err, errors.ErrHookLoad)
}

func TestTengoExecutor_HonoursContext(t *testing.T) {
	script := writeScript(t, "pre_gen_project.tengo", `for { }`)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := hooks.NewTengoExecutor().Run(ctx, script, hooks.Context{Hook: hooks.PreGenProject})

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestTengoExecutor_RestrictedModules(t *testing.T) {
	script := writeScript(t, "pre_gen_project.tengo", `os := import("os")`)
	executor := &hooks.TengoExecutor{Modules: []string{"text"}}

	err := executor.Run(context.Background(), script, hooks.Context{Hook: hooks.PreGenProject})

	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestTengoExecutor_HookTemplates(t *testing.T) {
	tests := []struct {
		name    string
		hook    hooks.Hook
		vars    map[string]string
		wantErr error
	}{
		{
			name: "pre_gen without variables",
			hook: hooks.PreGenProject,
		},
		{
			name: "pre_gen with a valid slug",
			hook: hooks.PreGenProject,
			vars: map[string]string{"project_slug": "demo"},
		},
		{
			name:    "pre_gen rejects a slug with spaces",
			hook:    hooks.PreGenProject,
			vars:    map[string]string{"project_slug": "my demo"},
			wantErr: errors.ErrHookScript,
		},
		{
			name: "post_gen without variables",
			hook: hooks.PostGenProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, string(tt.hook)+hooks.TengoExtension, hooks.HookTemplate(tt.hook))
			hctx := hooks.Context{Hook: tt.hook, ProjectDir: t.TempDir(), Vars: tt.vars}

			err := hooks.NewTengoExecutor().Run(context.Background(), script, hctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
