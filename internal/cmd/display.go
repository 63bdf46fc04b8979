package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	reasonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	priorityStyles = map[session.Priority]lipgloss.Style{
		session.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		session.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		session.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	}
	priorityDefault = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// renderSession writes the numbered task list with priorities, reasons,
// done markers, and the completion count. Task numbers are 1-based, the
// same numbering `prioritizer set` accepts.
func renderSession(w io.Writer, s *session.Session) {
	fmt.Fprintln(w, headerStyle.Render("Your AI-Prioritized Task List"))
	fmt.Fprintln(w)

	if len(s.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks in this session.")
		return
	}

	for i, task := range s.Tasks {
		status := "[ ]"
		desc := task.Description
		if task.Done {
			status = "[x]"
			desc = doneStyle.Render(desc)
		}

		style, ok := priorityStyles[task.Priority]
		if !ok {
			style = priorityDefault
		}
		label := style.Render(fmt.Sprintf("%-11s", "["+string(task.Priority)+"]"))

		fmt.Fprintf(w, "%2d. %s %s %s\n", i+1, status, label, desc)
		if task.Reason != "" {
			fmt.Fprintf(w, "           %s\n", reasonStyle.Render(task.Reason))
		}
	}

	completed, total := s.Progress()
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("%d/%d tasks completed", completed, total)))
}
