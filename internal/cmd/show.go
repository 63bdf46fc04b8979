package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
)

var showCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"load"},
	Short:   "Show the last saved session",
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.orch.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, errors.ErrNoSavedSession) {
			fmt.Fprintln(cmd.OutOrStdout(), "No previous session found. Run 'prioritizer create' first.")
			return nil
		}
		return err
	}

	renderSession(cmd.OutOrStdout(), s)
	return nil
}
