package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

var (
	ErrUnassigned  = errors.New("task is not assigned")
	ErrInvalidDays = errors.New("deadline days must not be negative")

	// ErrAlreadyAssigned is returned by storage when assigning a task that
	// already has an assignee.
	ErrAlreadyAssigned = errors.New("task is already assigned")
)

// ID identifies a task by the issue (or pull request) it was registered from.
type ID struct {
	IssueID      string
	RepoFullName string
	Provider     string
	PullRequest  bool
}

func (id ID) Project() scope.Project {
	return scope.Project{RepoFullName: id.RepoFullName, Provider: id.Provider}
}

func (id ID) String() string {
	sep := "#"
	if id.PullRequest {
		sep = "!"
	}

	return fmt.Sprintf("%s/%s%s%s", strings.ToLower(id.Provider), id.RepoFullName, sep, id.IssueID)
}

// Matches compares issue ids exactly and the project case-insensitively.
func (id ID) Matches(other ID) bool {
	return id.IssueID == other.IssueID &&
		id.PullRequest == other.PullRequest &&
		id.Project().Matches(other.Project())
}

// Issue is what the provider integration hands over when a task is registered.
type Issue struct {
	ID           string
	RepoFullName string
	Provider     string
	Role         string
	Estimation   int // minutes
	PullRequest  bool
}

func (i Issue) Project() scope.Project {
	return scope.Project{RepoFullName: i.RepoFullName, Provider: i.Provider}
}

func (i Issue) TaskID() ID {
	return ID{
		IssueID:      i.ID,
		RepoFullName: i.RepoFullName,
		Provider:     i.Provider,
		PullRequest:  i.PullRequest,
	}
}

// Assignment holds who works on a task and until when. A task either has all
// three facts or none.
type Assignment struct {
	Contributor string
	AssignedAt  time.Time
	Deadline    time.Time
}

// NewAssignment assigns username at the given time with a deadline days later.
func NewAssignment(username string, at time.Time, days int) (Assignment, error) {
	if days < 0 {
		return Assignment{}, ErrInvalidDays
	}

	return Assignment{
		Contributor: username,
		AssignedAt:  at,
		Deadline:    at.AddDate(0, 0, days),
	}, nil
}

// Task is a unit of paid work.
type Task struct {
	ID         ID
	Role       string
	Estimation int // minutes
	Assignment *Assignment
}

func (t *Task) Project() scope.Project {
	return t.ID.Project()
}

// Assignee returns the contributor the task is assigned to.
func (t *Task) Assignee() (scope.Contributor, bool) {
	if t.Assignment == nil {
		return scope.Contributor{}, false
	}

	return scope.Contributor{Username: t.Assignment.Contributor, Provider: t.ID.Provider}, true
}

// ContractID returns the id of the contract the task is being worked under.
func (t *Task) ContractID() (contract.ID, bool) {
	if t.Assignment == nil {
		return contract.ID{}, false
	}

	return contract.ID{
		RepoFullName:        t.ID.RepoFullName,
		ContributorUsername: t.Assignment.Contributor,
		Provider:            t.ID.Provider,
		Role:                t.Role,
	}, true
}

// BelongsTo reports whether the task is assigned under the given contract.
// Every component of the contract id must match.
func (t *Task) BelongsTo(id contract.ID) bool {
	own, ok := t.ContractID()
	if !ok {
		return false
	}

	return own.Matches(id)
}
