package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/tui"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track progress interactively",
	Long: `Open the saved session in an interactive checklist. Toggle tasks
done and not-done; every toggle is saved immediately.`,
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	final, err := tui.RunTrack(a.orch, a.cfg.Paths.ResolveDataDir())
	if err != nil {
		if errors.Is(err, errors.ErrNoSavedSession) {
			fmt.Fprintln(cmd.OutOrStdout(), "No session found to track. Run 'prioritizer create' first.")
			return nil
		}
		return err
	}

	renderSession(cmd.OutOrStdout(), final)
	return nil
}
