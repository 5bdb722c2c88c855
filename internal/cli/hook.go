package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/fsutil"
	"github.com/glorpus-work/cutter/pkg/hooks"
	"github.com/glorpus-work/cutter/pkg/template"
	"github.com/spf13/cobra"
)

// NewHookCmd creates the hook command with subcommands.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Run and scaffold template hooks",
		Long: fmt.Sprintf(`Work with the scripts in a template's %s/ directory.

Known hooks: %s, %s.`, hooks.HooksDirName, hooks.PreGenProject, hooks.PostGenProject),
	}

	cmd.AddCommand(
		newHookRunCmd(),
		newHookInitCmd(),
	)

	return cmd
}

func newHookRunCmd() *cobra.Command {
	var (
		templateDir string
		projectDir  string
		varPairs    []string
		keepProject bool
	)

	cmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Run a hook of a template",
		Long: `Run every script of hook NAME inside the project directory.

Scripts ending in .tengo run in-process, any other script is executed
directly. When a script fails a project directory created by this command
is removed unless --keep-project is given or the configuration disables it.
A directory that already existed is always kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hook := hooks.Hook(args[0])
			if !hook.IsValid() {
				return hooks.ErrUnknownHook(args[0])
			}

			vars, err := parseVars(varPairs)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			manifest, err := template.LoadManifest(templateDir)
			if err != nil {
				return err
			}
			if err := manifest.CheckVersion(Version); err != nil {
				return err
			}

			// A directory that was there before the hook is never removed.
			_, statErr := os.Lstat(projectDir)
			projectCreated := errors.Is(statErr, fs.ErrNotExist)

			if !fsutil.MakeSurePathExists(projectDir) {
				return fmt.Errorf("failed to create project directory %s", projectDir)
			}

			deleteOnFailure := manifest.ShouldDeleteOnFailure(cfg.Settings.DeleteProjectOnFailure) &&
				!keepProject && projectCreated
			if !projectCreated {
				logger.Debug("Project directory existed before the hook, it is kept on failure",
					logger.Fields{"project": projectDir})
			}
			runner := hooks.NewRunner(deleteOnFailure, cfg.Settings.HookTimeout)
			if err := runner.RunHook(cmd.Context(), hook, templateDir, projectDir, vars); err != nil {
				return err
			}

			logger.Success("Hook completed", logger.Fields{"hook": hook, "project": projectDir})
			return nil
		},
	}

	cmd.Flags().StringVar(&templateDir, "template", ".", "Template directory containing the hooks")
	cmd.Flags().StringVar(&projectDir, "project", "", "Project directory the hook runs in")
	cmd.Flags().StringArrayVar(&varPairs, "var", nil, "Template variable as key=value (repeatable)")
	cmd.Flags().BoolVar(&keepProject, "keep-project", false, "Keep the project directory when the hook fails")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newHookInitCmd() *cobra.Command {
	var (
		templateDir string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init NAME",
		Short: "Create a Tengo hook script from a skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hook := hooks.Hook(args[0])
			if !hook.IsValid() {
				return hooks.ErrUnknownHook(args[0])
			}

			hooksDir := filepath.Join(templateDir, hooks.HooksDirName)
			if err := fsutil.EnsureDir(hooksDir); err != nil {
				return err
			}

			script := filepath.Join(hooksDir, string(hook)+hooks.TengoExtension)
			if _, err := os.Stat(script); err == nil && !force {
				return fmt.Errorf("hook script %s already exists (use --force to overwrite)", script)
			}

			if err := os.WriteFile(script, []byte(hooks.HookTemplate(hook)), fsutil.FileModeDefault); err != nil {
				return fmt.Errorf("failed to write hook script: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), script)
			return err
		},
	}

	cmd.Flags().StringVar(&templateDir, "template", ".", "Template directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing script")

	return cmd
}
