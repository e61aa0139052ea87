package task

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

// view is the state shared by every task view variant.
type view struct {
	repo   Repository
	filter Filter
	seq    scope.Seq[*Task]
}

func lazyView(repo Repository, filter Filter) view {
	return view{
		repo:   repo,
		filter: filter,
		seq:    scope.Lazy(listTasks(repo, filter)).Where(filter.Contains),
	}
}

func listView(repo Repository, filter Filter, items []*Task) view {
	return view{
		repo:   repo,
		filter: filter,
		seq:    scope.List(items).Where(filter.Contains),
	}
}

func listTasks(repo Repository, filter Filter) scope.Loader[*Task] {
	return func(ctx context.Context) iter.Seq2[*Task, error] {
		return repo.ListTasks(ctx, filter)
	}
}

func (v view) derive(filter Filter) view {
	return view{
		repo:   v.repo,
		filter: filter,
		seq:    v.seq.Derive(listTasks(v.repo, filter), filter.Contains),
	}
}

// Scope returns the filter the view was narrowed to.
func (v view) Scope() Filter {
	return v.filter
}

// All iterates the tasks in scope. Every call starts a new iteration.
func (v view) All(ctx context.Context) iter.Seq2[*Task, error] {
	return v.seq.All(ctx)
}

// GetByID returns the task with the given id, or nil if it is not in scope.
func (v view) GetByID(ctx context.Context, id ID) (*Task, error) {
	found, ok, err := scope.Find(v.seq.All(ctx), func(t *Task) bool {
		return t.ID.Matches(id)
	})
	if err != nil {
		return nil, fmt.Errorf("finding task: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return found, nil
}

func (v view) Count(ctx context.Context) (int, error) {
	return scope.Count(v.seq.All(ctx))
}

func (v view) checkProject(p scope.Project) error {
	if v.filter.Project == nil {
		return nil
	}

	return scope.Check("project", *v.filter.Project, p)
}

func (v view) register(ctx context.Context, issue Issue) (*Task, error) {
	if err := v.checkProject(issue.Project()); err != nil {
		return nil, err
	}

	registered, err := v.repo.RegisterTask(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("registering task: %w", err)
	}

	v.seq.Append(registered)

	return registered, nil
}

func (v view) assign(ctx context.Context, t *Task, c *contract.Contract, days int) (*Task, error) {
	if err := v.checkProject(t.Project()); err != nil {
		return nil, err
	}

	if err := scope.Check("project", t.Project(), c.Project()); err != nil {
		return nil, err
	}

	// The contract has to cover the task's role as well as its project.
	want := contract.ID{
		RepoFullName:        t.ID.RepoFullName,
		ContributorUsername: c.ID.ContributorUsername,
		Provider:            t.ID.Provider,
		Role:                t.Role,
	}
	if err := scope.Check("contract", want, c.ID); err != nil {
		return nil, err
	}

	assignment, err := NewAssignment(c.ID.ContributorUsername, time.Now().UTC(), days)
	if err != nil {
		return nil, err
	}

	assigned, err := v.repo.AssignTask(ctx, t.ID, assignment)
	if err != nil {
		return nil, fmt.Errorf("assigning task: %w", err)
	}

	v.seq.Replace(sameID(t.ID), assigned)

	return assigned, nil
}

func (v view) mustContain(ctx context.Context, t *Task) error {
	if err := v.checkProject(t.Project()); err != nil {
		return err
	}

	found, err := v.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}

	if found == nil {
		return fmt.Errorf("task %s: %w", t.ID, scope.ErrNotFound)
	}

	return nil
}

func (v view) unassign(ctx context.Context, t *Task) (*Task, error) {
	if err := v.mustContain(ctx, t); err != nil {
		return nil, err
	}

	unassigned, err := v.repo.UnassignTask(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("unassigning task: %w", err)
	}

	v.seq.Replace(sameID(t.ID), unassigned)

	return unassigned, nil
}

func (v view) remove(ctx context.Context, t *Task) error {
	if err := v.mustContain(ctx, t); err != nil {
		return err
	}

	if err := v.repo.RemoveTask(ctx, t.ID); err != nil {
		return fmt.Errorf("removing task: %w", err)
	}

	v.seq.Delete(sameID(t.ID))

	return nil
}

func sameID(id ID) func(*Task) bool {
	return func(t *Task) bool {
		return t.ID.Matches(id)
	}
}

// Tasks is the unscoped view over every stored task.
type Tasks struct {
	view
}

func NewTasks(repo Repository) *Tasks {
	return &Tasks{view: lazyView(repo, Filter{})}
}

func (ts *Tasks) OfProject(p scope.Project) *ProjectTasks {
	return &ProjectTasks{view: ts.derive(Filter{Project: &p})}
}

func (ts *Tasks) OfContributor(c scope.Contributor) *ContributorTasks {
	return &ContributorTasks{view: ts.derive(Filter{Contributor: &c})}
}

func (ts *Tasks) OfContract(id contract.ID) *ContractTasks {
	return &ContractTasks{view: ts.derive(Filter{Contract: &id})}
}

func (ts *Tasks) Unassigned() *UnassignedTasks {
	return &UnassignedTasks{view: ts.derive(Filter{Unassigned: true})}
}

// Register creates an unassigned task from issue.
func (ts *Tasks) Register(ctx context.Context, issue Issue) (*Task, error) {
	return ts.register(ctx, issue)
}

func (ts *Tasks) Remove(ctx context.Context, t *Task) error {
	return ts.remove(ctx, t)
}

// ProjectTasks is a view over the tasks of one project.
type ProjectTasks struct {
	view
}

func NewProjectTasks(repo Repository, p scope.Project) *ProjectTasks {
	return &ProjectTasks{view: lazyView(repo, Filter{Project: &p})}
}

// NewProjectTasksFrom returns a list-backed view over items.
func NewProjectTasksFrom(repo Repository, p scope.Project, items []*Task) *ProjectTasks {
	return &ProjectTasks{view: listView(repo, Filter{Project: &p}, items)}
}

// Project returns the project the view is scoped to.
func (pt *ProjectTasks) Project() scope.Project {
	return *pt.filter.Project
}

func (pt *ProjectTasks) OfProject(p scope.Project) (*ProjectTasks, error) {
	if err := pt.checkProject(p); err != nil {
		return nil, err
	}

	return pt, nil
}

// OfContributor returns the contributor's tasks within this project.
func (pt *ProjectTasks) OfContributor(c scope.Contributor) *ContributorTasks {
	filter := pt.filter
	filter.Contributor = &c

	return &ContributorTasks{view: pt.derive(filter)}
}

func (pt *ProjectTasks) OfContract(id contract.ID) (*ContractTasks, error) {
	if err := pt.checkProject(id.Project()); err != nil {
		return nil, err
	}

	return &ContractTasks{view: pt.derive(Filter{Contract: &id})}, nil
}

func (pt *ProjectTasks) Unassigned() *UnassignedTasks {
	filter := pt.filter
	filter.Unassigned = true

	return &UnassignedTasks{view: pt.derive(filter)}
}

// Register creates an unassigned task. The issue must belong to this project.
func (pt *ProjectTasks) Register(ctx context.Context, issue Issue) (*Task, error) {
	return pt.register(ctx, issue)
}

// Assign gives t to the contract's contributor with a deadline days from now.
// Rejecting a task that is already assigned is left to storage.
func (pt *ProjectTasks) Assign(ctx context.Context, t *Task, c *contract.Contract, days int) (*Task, error) {
	return pt.assign(ctx, t, c, days)
}

// Unassign clears the assignment of a task of this project.
func (pt *ProjectTasks) Unassign(ctx context.Context, t *Task) (*Task, error) {
	return pt.unassign(ctx, t)
}

func (pt *ProjectTasks) Remove(ctx context.Context, t *Task) error {
	return pt.remove(ctx, t)
}

// ContributorTasks is a view over the tasks assigned to one contributor,
// optionally within one project.
type ContributorTasks struct {
	view
}

func NewContributorTasks(repo Repository, c scope.Contributor) *ContributorTasks {
	return &ContributorTasks{view: lazyView(repo, Filter{Contributor: &c})}
}

// NewContributorTasksFrom returns a list-backed view over items.
func NewContributorTasksFrom(repo Repository, c scope.Contributor, items []*Task) *ContributorTasks {
	return &ContributorTasks{view: listView(repo, Filter{Contributor: &c}, items)}
}

func (ct *ContributorTasks) OfContributor(c scope.Contributor) (*ContributorTasks, error) {
	if err := scope.Check("contributor", *ct.filter.Contributor, c); err != nil {
		return nil, err
	}

	return ct, nil
}

func (ct *ContributorTasks) OfProject(p scope.Project) (*ContributorTasks, error) {
	narrowed, err := scope.Narrow("project", ct.filter.Project, p)
	if err != nil {
		return nil, err
	}

	if !narrowed {
		return ct, nil
	}

	filter := ct.filter
	filter.Project = &p

	return &ContributorTasks{view: ct.derive(filter)}, nil
}

func (ct *ContributorTasks) OfContract(id contract.ID) (*ContractTasks, error) {
	if err := scope.Check("contributor", *ct.filter.Contributor, id.Contributor()); err != nil {
		return nil, err
	}

	if err := ct.checkProject(id.Project()); err != nil {
		return nil, err
	}

	return &ContractTasks{view: ct.derive(Filter{Contract: &id})}, nil
}

// ContractTasks is a view over the tasks assigned under one contract.
type ContractTasks struct {
	view
}

func NewContractTasks(repo Repository, id contract.ID) *ContractTasks {
	return &ContractTasks{view: lazyView(repo, Filter{Contract: &id})}
}

// NewContractTasksFrom returns a list-backed view over items.
func NewContractTasksFrom(repo Repository, id contract.ID, items []*Task) *ContractTasks {
	return &ContractTasks{view: listView(repo, Filter{Contract: &id}, items)}
}

func (ct *ContractTasks) OfContract(id contract.ID) (*ContractTasks, error) {
	if err := scope.Check("contract", *ct.filter.Contract, id); err != nil {
		return nil, err
	}

	return ct, nil
}

func (ct *ContractTasks) OfProject(p scope.Project) (*ContractTasks, error) {
	if err := scope.Check("project", ct.filter.Contract.Project(), p); err != nil {
		return nil, err
	}

	return ct, nil
}

func (ct *ContractTasks) OfContributor(c scope.Contributor) (*ContractTasks, error) {
	if err := scope.Check("contributor", ct.filter.Contract.Contributor(), c); err != nil {
		return nil, err
	}

	return ct, nil
}

// Unassign clears the assignment of a task worked under this contract.
func (ct *ContractTasks) Unassign(ctx context.Context, t *Task) (*Task, error) {
	if err := scope.Check("project", ct.filter.Contract.Project(), t.Project()); err != nil {
		return nil, err
	}

	return ct.unassign(ctx, t)
}

// UnassignedTasks is a view over tasks nobody works on, optionally within one
// project.
type UnassignedTasks struct {
	view
}

func NewUnassignedTasks(repo Repository, p scope.Project) *UnassignedTasks {
	return &UnassignedTasks{view: lazyView(repo, Filter{Project: &p, Unassigned: true})}
}

func (ut *UnassignedTasks) OfProject(p scope.Project) (*UnassignedTasks, error) {
	narrowed, err := scope.Narrow("project", ut.filter.Project, p)
	if err != nil {
		return nil, err
	}

	if !narrowed {
		return ut, nil
	}

	filter := ut.filter
	filter.Project = &p

	return &UnassignedTasks{view: ut.derive(filter)}, nil
}

// Assign gives t to the contract's contributor with a deadline days from now.
func (ut *UnassignedTasks) Assign(ctx context.Context, t *Task, c *contract.Contract, days int) (*Task, error) {
	return ut.assign(ctx, t, c, days)
}
