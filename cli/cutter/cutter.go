package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/cutter/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logFormat  string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cutter",
		Short: "Filesystem and hook helpers for project templates",
		Long: `cutter bundles the plumbing a project generator needs:
- Filesystem: force-remove trees, create directories, mark scripts executable
- Input: clean backspaces from typed answers and prompt for variables
- Templates: unpack and pack template archives, run pre/post generation hooks`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			cli.InitLogging()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.LogFormat = &logFormat

	// Add subcommands
	cmd.AddCommand(
		cli.NewRmCmd(),
		cli.NewMkdirCmd(),
		cli.NewChmodExecCmd(),
		cli.NewCleanInputCmd(),
		cli.NewPromptCmd(),
		cli.NewHookCmd(),
		cli.NewUnpackCmd(),
		cli.NewPackCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
