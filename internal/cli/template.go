package cli

import (
	"errors"
	"fmt"

	"github.com/glorpus-work/cutter/internal/logger"
	"github.com/glorpus-work/cutter/pkg/archive"
	cerrors "github.com/glorpus-work/cutter/pkg/errors"
	"github.com/glorpus-work/cutter/pkg/prompt"
	"github.com/glorpus-work/cutter/pkg/template"
	"github.com/spf13/cobra"
)

// NewUnpackCmd creates the unpack command.
func NewUnpackCmd() *cobra.Command {
	var (
		cloneDir string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "unpack ARCHIVE",
		Short: "Unpack a template archive",
		Long: `Unpack a template archive into the clone directory and print the
template directory.

A template unpacked before is replaced with --force. Without it an
interactive session is asked first and anything else fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cloneDir == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if cloneDir, err = cfg.GetCloneDir(); err != nil {
					return fmt.Errorf("failed to resolve clone directory: %w", err)
				}
			}

			am := archive.NewManager()
			templateDir, err := am.Unpack(cmd.Context(), args[0], cloneDir, force)
			if errors.Is(err, cerrors.ErrTemplateExists) && !force && stdinIsInteractive() {
				reader := prompt.NewReader(cmd.InOrStdin(), cmd.ErrOrStderr())
				question := fmt.Sprintf("You've unpacked %s before. Is it okay to delete and unpack it again?", archive.BaseName(args[0]))
				replace, askErr := reader.ReadYesNo(question, true)
				if askErr != nil {
					return askErr
				}
				if replace {
					templateDir, err = am.Unpack(cmd.Context(), args[0], cloneDir, true)
				}
			}
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

			logger.Debug("Template ready", logger.Fields{"name": manifest.Name, "path": templateDir})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), templateDir)
			return err
		},
	}

	cmd.Flags().StringVar(&cloneDir, "clone-dir", "", "Directory to unpack into (default: from configuration)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace a template unpacked before")

	return cmd
}

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack DIR ARCHIVE",
		Short: "Pack a template directory into a tar.gz archive",
		Args:  cobra.ExactArgs(PackArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDir, archivePath := args[0], args[1]

			if _, err := template.LoadManifest(sourceDir); err != nil {
				return err
			}

			if err := archive.NewManager().Create(cmd.Context(), sourceDir, archivePath); err != nil {
				return err
			}

			logger.Success("Template packed", logger.Fields{"source": sourceDir, "archive": archivePath})
			return nil
		},
	}

	cmd.Example = `  # Pack a template and unpack it again
  cutter pack ./my-template ./my-template.tar.gz
  cutter unpack ./my-template.tar.gz`

	return cmd
}
