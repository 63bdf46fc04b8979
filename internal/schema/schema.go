// Package schema validates and normalizes raw completion output into the
// canonical session shape. It is the mandatory gate between external text
// and the rest of the system: no component downstream of Normalize ever
// sees a raw untrusted shape.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

// Normalize parses raw completion text into a canonical Session.
//
// The text must be a JSON object whose prioritized_tasks key holds an
// array; anything else fails with a SchemaError. Individual elements are
// forgiving: a missing task or reason defaults to the empty string, a
// missing or unrecognized priority becomes PriorityUnspecified, and an
// element of the wrong type normalizes to an all-default task. A single
// malformed entry never discards the rest of the batch.
//
// The done flag is force-set to false on every entry regardless of the
// raw input; freshly generated prioritizations are never pre-marked
// complete. An empty task array is valid and yields an empty session.
func Normalize(raw string) (*session.Session, error) {
	cleaned := stripCodeFence(raw)

	var envelope struct {
		Tasks *json.RawMessage `json:"prioritized_tasks"`
	}
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, errors.NewSchemaError("result is not a JSON object", err).WithRaw(raw)
	}
	if envelope.Tasks == nil {
		return nil, errors.NewSchemaError("missing prioritized_tasks key", nil).WithRaw(raw)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(*envelope.Tasks, &elements); err != nil {
		return nil, errors.NewSchemaError("prioritized_tasks is not an array", err).WithRaw(raw)
	}

	tasks := make([]session.Task, len(elements))
	for i, element := range elements {
		var entry struct {
			Task     string `json:"task"`
			Priority string `json:"priority"`
			Reason   string `json:"reason"`
		}
		// Wrong-typed elements default rather than failing the batch.
		_ = json.Unmarshal(element, &entry)

		tasks[i] = session.Task{
			Description: entry.Task,
			Priority:    session.NormalizePriority(entry.Priority),
			Reason:      entry.Reason,
			Done:        false,
		}
	}

	return session.NewSession(tasks), nil
}

// stripCodeFence removes a surrounding markdown code fence, with optional
// language tag, if present. Models wrap JSON output in fences even when
// told not to.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	if idx := strings.Index(cleaned, "\n"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}
	if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}
