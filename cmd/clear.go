package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all parking data (requires login)",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		if !clearYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				"Are you sure you want to clear all parking data? This action cannot be undone. [y/N]: ")
			if err != nil {
				return userError(err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}
		if err := a.registry.Clear(ctx); err != nil {
			return storageError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All parking data has been cleared.")
		return nil
	})
}

// confirm prints question and reports whether the answer starts with y.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	answer, err := prompt(in, out, question)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// prompt prints question and returns the next trimmed input line. Pass the
// same *bufio.Reader to consecutive prompts so buffered input is not lost.
func prompt(in io.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
