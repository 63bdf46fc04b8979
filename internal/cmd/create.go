package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new prioritized task list",
	Long: `Ask for your main goal and your tasks, send them to the AI for
prioritization, and save the result as the current session.`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "What is your single most important goal for today? ")
	goal := ""
	if in.Scan() {
		goal = strings.TrimSpace(in.Text())
	}

	fmt.Fprintln(out, "\nEnter your tasks one by one.")
	fmt.Fprintln(out, "Type 'done' or press Enter with no text to finish.")
	tasks := collectTasks(in, out)

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks entered.")
		return nil
	}

	fmt.Fprintln(out, "\nAI is analyzing your tasks...")
	s, err := a.orch.Create(cmd.Context(), goal, tasks)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Analysis complete!")
	fmt.Fprintln(out)
	renderSession(out, s)
	return nil
}

// collectTasks reads task lines until a blank line or "done". Exact
// duplicates are rejected with a note rather than silently dropped.
func collectTasks(in *bufio.Scanner, out io.Writer) []string {
	var tasks []string
	seen := make(map[string]bool)

	for {
		fmt.Fprint(out, "  ↳ Task: ")
		if !in.Scan() {
			break
		}
		task := strings.TrimSpace(in.Text())
		if task == "" || strings.EqualFold(strings.Trim(task, " '\""), "done") {
			break
		}
		if seen[task] {
			fmt.Fprintln(out, "  (already on the list, skipped)")
			continue
		}
		seen[task] = true
		tasks = append(tasks, task)
	}
	return tasks
}
