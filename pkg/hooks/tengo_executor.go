package hooks

import (
	"context"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/errors"
)

// TengoExtension marks hook scripts run in-process by TengoExecutor.
const TengoExtension = ".tengo"

// TengoExecutor runs Tengo hook scripts in-process.
type TengoExecutor struct {
	// Modules lists the Tengo stdlib modules scripts may import.
	Modules []string
}

// NewTengoExecutor creates an executor with the whole Tengo stdlib available.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{Modules: stdlib.AllModuleNames()}
}

// Run compiles and runs script. A top-level err variable holding an error or a
// non-empty string fails the hook.
func (e *TengoExecutor) Run(ctx context.Context, script string, hctx Context) error {
	source, err := os.ReadFile(script)
	if err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "failed to read hook script %s: %v", script, err)
	}

	logger.Debug("Executing Tengo hook", logger.Fields{"hook": hctx.Hook, "script": script})

	moduleMap := stdlib.GetModuleMap(e.Modules...)
	setupScriptContext(moduleMap, hctx)

	scriptInstance := tengo.NewScript(source)
	scriptInstance.SetImports(moduleMap)

	compiled, err := scriptInstance.RunContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hctx.Hook, errors.ErrHookExecution, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%s: %w: %w", hctx.Hook, errors.ErrHookScript, v)
		case *tengo.Error:
			return fmt.Errorf("%s: %w: %s", hctx.Hook, errors.ErrHookScript, v.String())
		case string:
			if v != "" {
				return fmt.Errorf("%s: %w: %s", hctx.Hook, errors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// setupScriptContext exposes the generation context as the builtin modules
// "context" and "vars".
func setupScriptContext(moduleMap *tengo.ModuleMap, hctx Context) {
	moduleMap.AddBuiltinModule("context", map[string]tengo.Object{
		"hook":         &tengo.String{Value: string(hctx.Hook)},
		"template_dir": &tengo.String{Value: hctx.TemplateDir},
		"project_dir":  &tengo.String{Value: hctx.ProjectDir},
	})

	vars := make(map[string]tengo.Object, len(hctx.Vars))
	for k, v := range hctx.Vars {
		vars[k] = &tengo.String{Value: v}
	}
	moduleMap.AddBuiltinModule("vars", vars)
}
