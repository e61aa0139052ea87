package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

func (s *Store) RegisterTask(_ context.Context, issue task.Issue) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := issue.TaskID()
	if s.taskIndex(id) >= 0 {
		return nil, fmt.Errorf("task %s: %w", id, scope.ErrConflict)
	}

	t := &task.Task{ID: id, Role: issue.Role, Estimation: issue.Estimation}
	s.tasks = append(s.tasks, t)

	cp := *t

	return &cp, nil
}

func (s *Store) GetTask(_ context.Context, id task.ID) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
	}

	cp := *s.tasks[i]

	return &cp, nil
}

func (s *Store) ListTasks(_ context.Context, filter task.Filter) iter.Seq2[*task.Task, error] {
	return stream(s, func() []*task.Task { return s.tasks }, filter.Contains)
}

func (s *Store) AssignTask(_ context.Context, id task.ID, a task.Assignment) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
	}

	if s.tasks[i].Assignment != nil {
		return nil, fmt.Errorf("task %s: %w", id, task.ErrAlreadyAssigned)
	}

	next := *s.tasks[i]
	next.Assignment = &a
	s.tasks[i] = &next

	cp := next

	return &cp, nil
}

func (s *Store) UnassignTask(_ context.Context, id task.ID) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
	}

	next := *s.tasks[i]
	next.Assignment = nil
	s.tasks[i] = &next

	cp := next

	return &cp, nil
}

// RemoveTask deletes the task together with its resignations.
func (s *Store) RemoveTask(_ context.Context, id task.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.resignations = slices.DeleteFunc(s.resignations, func(r *resignation.Resignation) bool {
		return r.Task.Matches(id)
	})

	return nil
}

func (s *Store) taskIndex(id task.ID) int {
	return slices.IndexFunc(s.tasks, func(t *task.Task) bool {
		return t.ID.Matches(id)
	})
}
