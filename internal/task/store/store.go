package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/MrJamesThe3rd/paidwork/internal/database"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Expected column order: issue_id, repo_full_name, provider, pull_request, role, estimation, assignee, assigned_at, deadline
func scanTask(s database.Scanner) (*task.Task, error) {
	var t task.Task

	var assignee sql.NullString

	var assignedAt, deadline sql.NullTime

	if err := s.Scan(
		&t.ID.IssueID, &t.ID.RepoFullName, &t.ID.Provider, &t.ID.PullRequest,
		&t.Role, &t.Estimation, &assignee, &assignedAt, &deadline,
	); err != nil {
		return nil, err
	}

	if assignee.Valid {
		t.Assignment = &task.Assignment{
			Contributor: assignee.String,
			AssignedAt:  assignedAt.Time,
			Deadline:    deadline.Time,
		}
	}

	return &t, nil
}

const selectTaskColumns = `issue_id, repo_full_name, provider, pull_request, role, estimation, assignee, assigned_at, deadline`

const whereID = `issue_id = $1 AND lower(repo_full_name) = lower($2) AND lower(provider) = lower($3) AND pull_request = $4`

func idArgs(id task.ID) []any {
	return []any{id.IssueID, id.RepoFullName, id.Provider, id.PullRequest}
}

func (s *Store) RegisterTask(ctx context.Context, issue task.Issue) (*task.Task, error) {
	query := `
		INSERT INTO tasks (issue_id, repo_full_name, provider, pull_request, role, estimation)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + selectTaskColumns

	t, err := scanTask(s.db.QueryRowContext(ctx, query,
		issue.ID,
		issue.RepoFullName,
		issue.Provider,
		issue.PullRequest,
		issue.Role,
		issue.Estimation,
	))
	if err != nil {
		if database.IsConflict(err) {
			return nil, fmt.Errorf("task %s: %w", issue.TaskID(), scope.ErrConflict)
		}

		return nil, fmt.Errorf("registering task: %w", err)
	}

	return t, nil
}

func (s *Store) GetTask(ctx context.Context, id task.ID) (*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks WHERE ` + whereID

	t, err := scanTask(s.db.QueryRowContext(ctx, query, idArgs(id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, filter task.Filter) iter.Seq2[*task.Task, error] {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Project != nil {
		query += fmt.Sprintf(" AND lower(repo_full_name) = lower($%d) AND lower(provider) = lower($%d)", argIdx, argIdx+1)

		args = append(args, filter.Project.RepoFullName, filter.Project.Provider)
		argIdx += 2
	}

	if filter.Unassigned {
		query += " AND assignee IS NULL"
	}

	if filter.Contributor != nil {
		query += fmt.Sprintf(" AND assignee = $%d AND lower(provider) = lower($%d)", argIdx, argIdx+1)

		args = append(args, filter.Contributor.Username, filter.Contributor.Provider)
		argIdx += 2
	}

	if c := filter.Contract; c != nil {
		query += fmt.Sprintf(
			" AND lower(repo_full_name) = lower($%d) AND assignee = $%d AND lower(provider) = lower($%d) AND lower(role) = lower($%d)",
			argIdx, argIdx+1, argIdx+2, argIdx+3,
		)

		args = append(args, c.RepoFullName, c.ContributorUsername, c.Provider, c.Role)
	}

	query += " ORDER BY repo_full_name, issue_id"

	return database.Rows(ctx, s.db, scanTask, query, args...)
}

// AssignTask sets the assignment of an unassigned task.
func (s *Store) AssignTask(ctx context.Context, id task.ID, a task.Assignment) (*task.Task, error) {
	query := `
		UPDATE tasks SET assignee = $5, assigned_at = $6, deadline = $7
		WHERE ` + whereID + ` AND assignee IS NULL
		RETURNING ` + selectTaskColumns

	t, err := scanTask(s.db.QueryRowContext(ctx, query, append(idArgs(id), a.Contributor, a.AssignedAt, a.Deadline)...))
	if err == nil {
		return t, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assigning task: %w", err)
	}

	// Either the task does not exist or someone else holds it.
	if _, err := s.GetTask(ctx, id); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("task %s: %w", id, task.ErrAlreadyAssigned)
}

func (s *Store) UnassignTask(ctx context.Context, id task.ID) (*task.Task, error) {
	query := `
		UPDATE tasks SET assignee = NULL, assigned_at = NULL, deadline = NULL
		WHERE ` + whereID + `
		RETURNING ` + selectTaskColumns

	t, err := scanTask(s.db.QueryRowContext(ctx, query, idArgs(id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("unassigning task: %w", err)
	}

	return t, nil
}

func (s *Store) RemoveTask(ctx context.Context, id task.ID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE `+whereID, idArgs(id)...)
	if err != nil {
		return fmt.Errorf("removing task: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing task: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
	}

	return nil
}
