package hooks

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cerrors "github.com/glorpus-work/cutter/pkg/errors"
)

// HooksDirName is the directory inside a template that holds hook scripts.
const HooksDirName = "hooks"

// FindHook returns the scripts in hooksDir whose name without extension is
// hook, sorted by file name. Editor backups ending in "~" are ignored.
// A missing hooks directory means there is nothing to run.
func FindHook(hooksDir string, hook Hook) ([]string, error) {
	if !hook.IsValid() {
		return nil, ErrUnknownHook(string(hook))
	}

	entries, err := os.ReadDir(hooksDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, cerrors.Wrapf(err, "failed to read hooks directory %s", hooksDir)
	}

	var scripts []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, "~") {
			continue
		}
		if strings.TrimSuffix(name, filepath.Ext(name)) != string(hook) {
			continue
		}
		scripts = append(scripts, filepath.Join(hooksDir, name))
	}

	sort.Strings(scripts)
	return scripts, nil
}

// HookTemplate generates a starting point for a Tengo hook script.
func HookTemplate(hook Hook) string {
	switch hook {
	case PreGenProject:
		return `// pre_gen_project hook
// Runs inside the project directory before any file is rendered.
// Available modules:
// - context: template_dir, project_dir, hook
// - vars: the template variables as strings
// Set err to a message to abort generation.

vars := import("vars")
text := import("text")

err := ""
if is_string(vars.project_slug) && text.contains(vars.project_slug, " ") {
    err = "project_slug must not contain spaces"
}
`

	case PostGenProject:
		return `// post_gen_project hook
// Runs inside the generated project directory.
// Available modules: same as pre_gen_project.

os := import("os")
context := import("context")

// Example: drop a file the template only needs while rendering.
/*
os.remove("LICENSE.tmp")
*/
`

	default:
		return "// Unknown hook: " + string(hook)
	}
}
