package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/MrJamesThe3rd/paidwork/internal/database"
	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectResignationColumns = `issue_id, repo_full_name, provider, pull_request, contributor, resigned_at, reason`

func scanResignation(s database.Scanner) (*resignation.Resignation, error) {
	var r resignation.Resignation

	if err := s.Scan(
		&r.Task.IssueID, &r.Task.RepoFullName, &r.Task.Provider, &r.Task.PullRequest,
		&r.Contributor, &r.Timestamp, &r.Reason,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

func (s *Store) Resign(ctx context.Context, r resignation.Resignation) (*resignation.Resignation, error) {
	query := `
		INSERT INTO resignations (issue_id, repo_full_name, provider, pull_request, contributor, resigned_at, reason)
		SELECT issue_id, repo_full_name, provider, pull_request, $5, $6, $7
		FROM tasks
		WHERE issue_id = $1 AND lower(repo_full_name) = lower($2) AND lower(provider) = lower($3) AND pull_request = $4
		RETURNING ` + selectResignationColumns

	resigned, err := scanResignation(s.db.QueryRowContext(ctx, query,
		r.Task.IssueID, r.Task.RepoFullName, r.Task.Provider, r.Task.PullRequest,
		r.Contributor, r.Timestamp, r.Reason,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", r.Task, scope.ErrNotFound)
		}

		if database.IsConflict(err) {
			return nil, fmt.Errorf("%s already resigned from %s: %w", r.Contributor, r.Task, scope.ErrConflict)
		}

		return nil, fmt.Errorf("registering resignation: %w", err)
	}

	return resigned, nil
}

func (s *Store) ListResignations(ctx context.Context, filter resignation.Filter) iter.Seq2[*resignation.Resignation, error] {
	query := `SELECT ` + selectResignationColumns + ` FROM resignations WHERE TRUE`

	var args []any

	argIdx := 1

	if t := filter.Task; t != nil {
		query += fmt.Sprintf(
			" AND issue_id = $%d AND lower(repo_full_name) = lower($%d) AND lower(provider) = lower($%d) AND pull_request = $%d",
			argIdx, argIdx+1, argIdx+2, argIdx+3,
		)

		args = append(args, t.IssueID, t.RepoFullName, t.Provider, t.PullRequest)
		argIdx += 4
	}

	if c := filter.Contributor; c != nil {
		query += fmt.Sprintf(" AND contributor = $%d AND lower(provider) = lower($%d)", argIdx, argIdx+1)

		args = append(args, c.Username, c.Provider)
	}

	query += " ORDER BY resigned_at"

	return database.Rows(ctx, s.db, scanResignation, query, args...)
}
