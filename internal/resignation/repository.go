package resignation

import (
	"context"
	"iter"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// Repository stores resignations. Resign only records the fact; unassigning the
// task is left to the caller.
//
//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=resignation
type Repository interface {
	Resign(ctx context.Context, r Resignation) (*Resignation, error)
	ListResignations(ctx context.Context, filter Filter) iter.Seq2[*Resignation, error]
}

// Filter narrows ListResignations. Nil fields are not constrained.
type Filter struct {
	Task        *task.ID
	Contributor *scope.Contributor
}

func (f Filter) Contains(r *Resignation) bool {
	if f.Task != nil && !f.Task.Matches(r.Task) {
		return false
	}

	if f.Contributor != nil && !f.Contributor.Matches(r.Resigned()) {
		return false
	}

	return true
}
