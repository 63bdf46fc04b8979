// Package prioritize turns a goal and a flat task list into a
// prioritized session by consulting the completion client and validating
// its output.
package prioritize

import (
	"context"
	"fmt"
	"strings"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/ai"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/logging"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/schema"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/util"
)

const systemPrompt = `You are an expert productivity coach. Prioritize the given list of tasks
according to the user's main goal. Respond ONLY with valid JSON:
{
  "prioritized_tasks": [
     {"task": "...", "priority": "High/Medium/Low", "reason": "..."}
  ]
}`

// Service produces prioritized sessions. The completion client is an
// explicit dependency; tests pass an ai.CompleteFunc fake.
type Service struct {
	client ai.CompletionClient
	logger *logging.Logger
}

// NewService creates a prioritization service.
func NewService(client ai.CompletionClient, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Service{
		client: client,
		logger: logger.WithComponent("prioritize"),
	}
}

// Prioritize asks the model to order tasks against the goal and returns
// the validated session. The goal may be empty; the task list may not.
// The task order in the result is the model's order, not the input order,
// and every returned task starts not-done.
//
// A completion failure surfaces as an UpstreamError and a malformed
// result as a SchemaError wrapped in an UpstreamError; in both cases the
// caller decides whether to ask again. There is exactly one completion
// and one parse attempt per call.
func (s *Service) Prioritize(ctx context.Context, goal string, tasks []string) (*session.Session, error) {
	if len(tasks) == 0 {
		return nil, errors.NewValidationError("task list is empty").
			WithField("tasks").
			WithCause(errors.ErrEmptyTaskList)
	}
	for i, task := range tasks {
		if strings.TrimSpace(task) == "" {
			return nil, errors.NewValidationError("task description is blank").
				WithField(fmt.Sprintf("tasks[%d]", i))
		}
	}

	userPrompt := buildUserPrompt(goal, tasks)
	s.logger.Debug("requesting prioritization", "task_count", len(tasks))

	raw, err := s.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.logger.Error("completion failed", "error", err)
		return nil, err
	}

	result, err := schema.Normalize(raw)
	if err != nil {
		s.logger.Error("completion produced malformed result",
			"error", err, "raw", util.TruncateString(raw, 300))
		return nil, errors.NewUpstreamError("model returned a malformed result", err)
	}

	s.logger.Info("prioritization complete", "task_count", len(result.Tasks))
	return result, nil
}

// buildUserPrompt renders the goal and tasks into the bullet format the
// system prompt expects.
func buildUserPrompt(goal string, tasks []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My main goal today is: %q.\n\nHere are my tasks:\n", goal)
	for i, task := range tasks {
		b.WriteString("- ")
		b.WriteString(task)
		if i < len(tasks)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
