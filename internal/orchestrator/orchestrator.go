// Package orchestrator composes the prioritization service and the
// session store into the operations the CLI and HTTP server expose.
package orchestrator

import (
	"context"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/logging"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

// Prioritizer produces a prioritized session from a goal and tasks.
// Implemented by prioritize.Service.
type Prioritizer interface {
	Prioritize(ctx context.Context, goal string, tasks []string) (*session.Session, error)
}

// Store persists sessions. Implemented by session.FileStore.
type Store interface {
	Save(ctx context.Context, s *session.Session) (string, error)
	LoadLatest(ctx context.Context) (*session.Session, error)
}

// Orchestrator wires prioritization to persistence. Every mutating
// operation saves before returning, so the on-disk state always reflects
// the applied change.
type Orchestrator struct {
	service Prioritizer
	store   Store
	logger  *logging.Logger
}

// New creates an orchestrator.
func New(service Prioritizer, store Store, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Orchestrator{
		service: service,
		store:   store,
		logger:  logger.WithComponent("orchestrator"),
	}
}

// Create prioritizes the tasks against the goal and saves the result as
// the new current session. Nothing is persisted when prioritization
// fails.
func (o *Orchestrator) Create(ctx context.Context, goal string, tasks []string) (*session.Session, error) {
	s, err := o.service.Prioritize(ctx, goal, tasks)
	if err != nil {
		return nil, err
	}

	archive, err := o.store.Save(ctx, s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save new session")
	}
	o.logger.Info("session created", "archive", archive, "task_count", len(s.Tasks))
	return s, nil
}

// Load returns the current session without modifying it.
func (o *Orchestrator) Load(ctx context.Context) (*session.Session, error) {
	return o.store.LoadLatest(ctx)
}

// Toggle flips the done flag of one task in the current session and
// saves. A bad index leaves the stored session untouched.
func (o *Orchestrator) Toggle(ctx context.Context, index int) (*session.Session, error) {
	return o.mutate(ctx, func(s *session.Session) error {
		return s.Toggle(index)
	})
}

// UpdateOne sets the done flag of one task to an explicit value and
// saves.
func (o *Orchestrator) UpdateOne(ctx context.Context, index int, done bool) (*session.Session, error) {
	return o.mutate(ctx, func(s *session.Session) error {
		return s.SetDone(index, done)
	})
}

// Save persists a session the caller already holds, replacing the
// current one. Returns the archive filename.
func (o *Orchestrator) Save(ctx context.Context, s *session.Session) (string, error) {
	return o.store.Save(ctx, s)
}

func (o *Orchestrator) mutate(ctx context.Context, apply func(*session.Session) error) (*session.Session, error) {
	s, err := o.store.LoadLatest(ctx)
	if err != nil {
		return nil, err
	}
	if err := apply(s); err != nil {
		return nil, err
	}
	if _, err := o.store.Save(ctx, s); err != nil {
		return nil, errors.Wrap(err, "failed to save updated session")
	}
	return s, nil
}
