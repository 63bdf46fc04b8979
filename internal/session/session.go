// Package session defines the canonical prioritization session model and
// its file-based persistence. A session is an ordered list of prioritized
// tasks; task identity is the positional index, and only the done flag is
// ever mutated after creation.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
)

// Priority is the tier assigned to a task by the prioritization call.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	// PriorityUnspecified is the sentinel for missing or unrecognized
	// priority values. Out-of-domain values normalize here, never fail.
	PriorityUnspecified Priority = "Unspecified"
)

// NormalizePriority maps a raw priority string onto the canonical domain.
// Matching is case-insensitive; anything outside {High, Medium, Low}
// becomes PriorityUnspecified.
func NormalizePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityUnspecified
	}
}

// Task is a single prioritized task. All fields except Done are immutable
// after the session is built.
type Task struct {
	Description string   `json:"task"`
	Priority    Priority `json:"priority"`
	Reason      string   `json:"reason"`
	Done        bool     `json:"done"`
}

// Session is an ordered prioritization result. The order is the ranking
// produced by the AI call and is preserved through save/load; tasks are
// never reordered or removed.
type Session struct {
	Tasks     []Task    `json:"prioritized_tasks"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// NewSession creates a session from already-canonical tasks, stamping the
// creation time.
func NewSession(tasks []Task) *Session {
	if tasks == nil {
		tasks = make([]Task, 0)
	}
	return &Session{
		Tasks:     tasks,
		CreatedAt: time.Now(),
	}
}

// Toggle negates the done flag of the task at index. All other fields and
// ordering are untouched. Returns an IndexError when index is outside
// [0, len(Tasks)); the session is unmodified in that case.
func (s *Session) Toggle(index int) error {
	if index < 0 || index >= len(s.Tasks) {
		return errors.NewIndexError(index, len(s.Tasks))
	}
	s.Tasks[index].Done = !s.Tasks[index].Done
	return nil
}

// SetDone sets the done flag of the task at index to an explicit value.
// Used by programmatic callers that address one task directly rather than
// toggling interactively.
func (s *Session) SetDone(index int, done bool) error {
	if index < 0 || index >= len(s.Tasks) {
		return errors.NewIndexError(index, len(s.Tasks))
	}
	s.Tasks[index].Done = done
	return nil
}

// Progress returns the count of completed tasks over the total task count.
// A session with no tasks yields (0, 0); ratio computation is the caller's
// responsibility and must guard the zero-total case.
func (s *Session) Progress() (completed, total int) {
	for _, t := range s.Tasks {
		if t.Done {
			completed++
		}
	}
	return completed, len(s.Tasks)
}

// Encode serializes the session to indented JSON in the persisted wire
// format: {"prioritized_tasks": [...]}.
func (s *Session) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

// DecodeSession parses persisted session data, enforcing the structural
// invariants of the wire format: a JSON object whose prioritized_tasks key
// holds an array. Priorities are re-normalized so data written by other
// tools still lands in the canonical domain. Done flags are preserved.
func DecodeSession(data []byte) (*Session, error) {
	var envelope struct {
		Tasks     *json.RawMessage `json:"prioritized_tasks"`
		CreatedAt time.Time        `json:"created_at"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if envelope.Tasks == nil {
		return nil, fmt.Errorf("missing prioritized_tasks key")
	}

	var rawTasks []struct {
		Task     string `json:"task"`
		Priority string `json:"priority"`
		Reason   string `json:"reason"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(*envelope.Tasks, &rawTasks); err != nil {
		return nil, fmt.Errorf("prioritized_tasks is not a task array: %w", err)
	}

	tasks := make([]Task, len(rawTasks))
	for i, rt := range rawTasks {
		tasks[i] = Task{
			Description: rt.Task,
			Priority:    NormalizePriority(rt.Priority),
			Reason:      rt.Reason,
			Done:        rt.Done,
		}
	}

	return &Session{
		Tasks:     tasks,
		CreatedAt: envelope.CreatedAt,
	}, nil
}
