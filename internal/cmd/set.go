package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
)

var setCmd = &cobra.Command{
	Use:   "set <task-number> <done|undone>",
	Short: "Set one task's completion status",
	Long: `Set a task done or undone without opening the tracker. Task numbers
are the 1-based numbers 'prioritizer show' prints.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func parseDoneArg(arg string) (bool, error) {
	switch arg {
	case "done":
		return true, nil
	case "undone", "not-done":
		return false, nil
	}
	done, err := strconv.ParseBool(arg)
	if err != nil {
		return false, errors.NewValidationError("status must be 'done', 'undone', true, or false").
			WithField("status").
			WithValue(arg)
	}
	return done, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NewValidationError("task number must be an integer").
			WithField("task-number").
			WithValue(args[0])
	}
	done, err := parseDoneArg(args[1])
	if err != nil {
		return err
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.orch.UpdateOne(cmd.Context(), number-1, done)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Task %d updated.\n\n", number)
	renderSession(cmd.OutOrStdout(), s)
	return nil
}
