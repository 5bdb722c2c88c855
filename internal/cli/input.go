package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/glorpus-work/cutter/pkg/prompt"
	"github.com/spf13/cobra"
)

// NewCleanInputCmd creates the clean-input command.
func NewCleanInputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean-input",
		Short: "Apply backspace characters in standard input",
		Long: `Read standard input line by line and print each line with every
backspace character applied, as a terminal would show it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			for scanner.Scan() {
				if _, err := fmt.Fprintln(out, prompt.RemoveBackspaces(scanner.Text())); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	return cmd
}

// NewPromptCmd creates the prompt command.
func NewPromptCmd() *cobra.Command {
	var def string

	cmd := &cobra.Command{
		Use:   "prompt NAME",
		Short: "Ask for a template variable",
		Long: `Ask for the value of NAME and print the answer.

The question goes to standard error so the answer can be captured.
An empty answer prints the default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := prompt.NewReader(cmd.InOrStdin(), cmd.ErrOrStderr())
			answer, err := reader.ReadVariable(args[0], def)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return err
		},
	}

	cmd.Flags().StringVar(&def, "default", "", "Value used for an empty answer")

	return cmd
}

// stdinIsInteractive is replaced in tests.
var stdinIsInteractive = func() bool {
	return prompt.IsInteractive(os.Stdin)
}
