package resignation

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// TaskResignations is a view over the resignations filed on one task.
type TaskResignations struct {
	repo Repository
	task task.ID
	seq  scope.Seq[*Resignation]
}

func NewTaskResignations(repo Repository, id task.ID) *TaskResignations {
	filter := Filter{Task: &id}

	return &TaskResignations{
		repo: repo,
		task: id,
		seq:  load(repo, filter),
	}
}

// NewTaskResignationsFrom returns a list-backed view over items.
func NewTaskResignationsFrom(repo Repository, id task.ID, items []*Resignation) *TaskResignations {
	return &TaskResignations{
		repo: repo,
		task: id,
		seq:  scope.List(items).Where(Filter{Task: &id}.Contains),
	}
}

func load(repo Repository, filter Filter) scope.Seq[*Resignation] {
	return scope.Lazy(func(ctx context.Context) iter.Seq2[*Resignation, error] {
		return repo.ListResignations(ctx, filter)
	}).Where(filter.Contains)
}

func (tr *TaskResignations) OfTask(id task.ID) (*TaskResignations, error) {
	if err := scope.Check("task", tr.task, id); err != nil {
		return nil, err
	}

	return tr, nil
}

func (tr *TaskResignations) All(ctx context.Context) iter.Seq2[*Resignation, error] {
	return tr.seq.All(ctx)
}

// Register records that the current assignee of t resigned from it. The task
// stays assigned until the caller unassigns it.
func (tr *TaskResignations) Register(ctx context.Context, t *task.Task, reason string) (*Resignation, error) {
	if err := scope.Check("task", tr.task, t.ID); err != nil {
		return nil, err
	}

	assignee, ok := t.Assignee()
	if !ok {
		return nil, fmt.Errorf("task %s: %w", t.ID, task.ErrUnassigned)
	}

	resigned, err := tr.repo.Resign(ctx, Resignation{
		Task:        t.ID,
		Contributor: assignee.Username,
		Timestamp:   time.Now().UTC(),
		Reason:      reason,
	})
	if err != nil {
		return nil, fmt.Errorf("registering resignation: %w", err)
	}

	tr.seq.Append(resigned)

	return resigned, nil
}

// ContributorResignations is a view over every resignation of one
// contributor.
type ContributorResignations struct {
	contributor scope.Contributor
	seq         scope.Seq[*Resignation]
}

func NewContributorResignations(repo Repository, c scope.Contributor) *ContributorResignations {
	return &ContributorResignations{
		contributor: c,
		seq:         load(repo, Filter{Contributor: &c}),
	}
}

// NewContributorResignationsFrom returns a list-backed view over items.
func NewContributorResignationsFrom(c scope.Contributor, items []*Resignation) *ContributorResignations {
	return &ContributorResignations{
		contributor: c,
		seq:         scope.List(items).Where(Filter{Contributor: &c}.Contains),
	}
}

func (cr *ContributorResignations) OfContributor(c scope.Contributor) (*ContributorResignations, error) {
	if err := scope.Check("contributor", cr.contributor, c); err != nil {
		return nil, err
	}

	return cr, nil
}

func (cr *ContributorResignations) All(ctx context.Context) iter.Seq2[*Resignation, error] {
	return cr.seq.All(ctx)
}

func (cr *ContributorResignations) Count(ctx context.Context) (int, error) {
	n, err := scope.Count(cr.seq.All(ctx))
	if err != nil {
		return 0, fmt.Errorf("counting resignations: %w", err)
	}

	return n, nil
}
