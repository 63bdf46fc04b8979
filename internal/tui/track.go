// Package tui implements the interactive progress tracker: the saved
// session rendered as a checklist with per-task toggling, a completion
// bar, and live reload when another process rewrites the session file.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/util"
)

// Controller is the subset of orchestrator operations the track view
// needs.
type Controller interface {
	Load(ctx context.Context) (*session.Session, error)
	Toggle(ctx context.Context, index int) (*session.Session, error)
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Reload, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type sessionLoadedMsg struct {
	session *session.Session
}

type trackErrMsg struct {
	err error
}

// Model is the bubbletea model for the track view.
type Model struct {
	controller Controller
	watcher    *fileWatcher
	styles     *Styles
	keys       keyMap
	help       help.Model
	progress   progress.Model

	session  *session.Session
	cursor   int
	err      error
	quitting bool
	width    int
}

// NewModel creates a track view over an already-loaded session. The
// watcher may be nil; live reload is then disabled.
func NewModel(controller Controller, s *session.Session, watcher *fileWatcher) Model {
	return Model{
		controller: controller,
		watcher:    watcher,
		styles:     NewStyles(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient()),
		session:    s,
	}
}

// Init starts the file watcher loop when one is attached.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.waitForFileChange()
}

// Update handles key presses and reload messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, 40)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.watcher != nil {
				m.watcher.Close()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.session.Tasks)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if len(m.session.Tasks) == 0 {
				return m, nil
			}
			return m, m.toggleTask(m.cursor)

		case key.Matches(msg, m.keys.Reload):
			return m, m.loadSession()
		}
		return m, nil

	case sessionLoadedMsg:
		m.session = msg.session
		m.err = nil
		if m.cursor >= len(m.session.Tasks) && len(m.session.Tasks) > 0 {
			m.cursor = len(m.session.Tasks) - 1
		}
		return m, nil

	case trackErrMsg:
		m.err = msg.err
		return m, nil

	case sessionFileChangedMsg:
		// Another process rewrote latest.json; reload and re-arm the
		// watcher. Our own toggles arrive here too, which is a benign
		// extra load of state we already hold.
		return m, tea.Batch(m.loadSession(), m.waitForFileChange())

	case watcherClosedMsg:
		return m, nil
	}

	return m, nil
}

// View renders the checklist.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your AI-Prioritized Task List"))
	b.WriteString("\n\n")

	if len(m.session.Tasks) == 0 {
		b.WriteString(m.styles.Help.Render("No tasks in this session."))
		b.WriteString("\n")
		return b.String()
	}

	for i, task := range m.session.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("❯ ")
		}

		status := "[ ]"
		if task.Done {
			status = "[x]"
		}

		desc := m.styles.Pending.Render(task.Description)
		if task.Done {
			desc = m.styles.Done.Render(task.Description)
		} else if i == m.cursor {
			desc = m.styles.Selected.Render(task.Description)
		}

		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, status, m.priorityLabel(task.Priority), desc)
		if task.Reason != "" {
			reason := m.styles.Reason.Render(task.Reason)
			if m.width > 12 {
				reason = util.TruncateANSI(reason, m.width-8)
			}
			fmt.Fprintf(&b, "        %s\n", reason)
		}
	}

	completed, total := m.session.Progress()
	ratio := 0.0
	if total > 0 {
		ratio = float64(completed) / float64(total)
	}
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(ratio))
	b.WriteString("\n")
	b.WriteString(m.styles.Progress.Render(fmt.Sprintf("%d/%d tasks completed", completed, total)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) priorityLabel(p session.Priority) string {
	label := fmt.Sprintf("%-11s", "["+string(p)+"]")
	switch p {
	case session.PriorityHigh:
		return m.styles.High.Render(label)
	case session.PriorityMedium:
		return m.styles.Medium.Render(label)
	case session.PriorityLow:
		return m.styles.Low.Render(label)
	default:
		return m.styles.Unspecified.Render(label)
	}
}

func (m Model) toggleTask(index int) tea.Cmd {
	return func() tea.Msg {
		s, err := m.controller.Toggle(context.Background(), index)
		if err != nil {
			return trackErrMsg{err: err}
		}
		return sessionLoadedMsg{session: s}
	}
}

func (m Model) loadSession() tea.Cmd {
	return func() tea.Msg {
		s, err := m.controller.Load(context.Background())
		if err != nil {
			return trackErrMsg{err: err}
		}
		return sessionLoadedMsg{session: s}
	}
}

func (m Model) waitForFileChange() tea.Cmd {
	return func() tea.Msg {
		return m.watcher.waitForChange()
	}
}

// RunTrack loads the current session and runs the interactive tracker
// until the user quits. The final session state is returned.
func RunTrack(controller Controller, dataDir string) (*session.Session, error) {
	s, err := controller.Load(context.Background())
	if err != nil {
		return nil, err
	}

	watcher, err := newFileWatcher(dataDir)
	if err != nil {
		// Live reload is a convenience; run without it.
		watcher = nil
	}

	model := NewModel(controller, s, watcher)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).session, nil
}
