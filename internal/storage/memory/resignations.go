package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

func (s *Store) Resign(_ context.Context, r resignation.Resignation) (*resignation.Resignation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(r.Task)
	if i < 0 {
		return nil, fmt.Errorf("task %s: %w", r.Task, scope.ErrNotFound)
	}

	if slices.ContainsFunc(s.resignations, func(existing *resignation.Resignation) bool {
		return existing.Task.Matches(r.Task) && existing.Contributor == r.Contributor
	}) {
		return nil, fmt.Errorf("%s already resigned from %s: %w", r.Contributor, r.Task, scope.ErrConflict)
	}

	r.Task = s.tasks[i].ID
	s.resignations = append(s.resignations, &r)

	cp := r

	return &cp, nil
}

func (s *Store) ListResignations(_ context.Context, filter resignation.Filter) iter.Seq2[*resignation.Resignation, error] {
	return stream(s, func() []*resignation.Resignation { return s.resignations }, filter.Contains)
}
