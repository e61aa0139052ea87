package task

import (
	"context"
	"iter"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=task
type Repository interface {
	RegisterTask(ctx context.Context, issue Issue) (*Task, error)
	GetTask(ctx context.Context, id ID) (*Task, error)
	ListTasks(ctx context.Context, filter Filter) iter.Seq2[*Task, error]
	AssignTask(ctx context.Context, id ID, assignment Assignment) (*Task, error)
	UnassignTask(ctx context.Context, id ID) (*Task, error)
	RemoveTask(ctx context.Context, id ID) error
}

// Filter narrows ListTasks. Zero fields are not constrained.
type Filter struct {
	Project     *scope.Project
	Contributor *scope.Contributor
	Contract    *contract.ID
	Unassigned  bool
}

// Contains reports whether t falls inside the filter.
func (f Filter) Contains(t *Task) bool {
	if f.Project != nil && !f.Project.Matches(t.Project()) {
		return false
	}

	if f.Unassigned && t.Assignment != nil {
		return false
	}

	if f.Contributor != nil {
		assignee, ok := t.Assignee()
		if !ok || !f.Contributor.Matches(assignee) {
			return false
		}
	}

	if f.Contract != nil && !t.BelongsTo(*f.Contract) {
		return false
	}

	return true
}
