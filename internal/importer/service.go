package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// Result summarises an import.
type Result struct {
	Registered []*task.Task
	// Skipped holds rows that were malformed or already registered.
	Skipped []*RowError
}

type Service struct {
	parser *Parser
}

func NewService() *Service {
	return &Service{parser: NewParser()}
}

// Import registers every issue of the export as a task of the project the
// view is scoped to. Rows for issues that are already registered are skipped;
// any other storage failure aborts the import.
func (s *Service) Import(ctx context.Context, tasks *task.ProjectTasks, r io.Reader) (*Result, error) {
	rows, skipped, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing issues: %w", err)
	}

	p := tasks.Project()
	result := &Result{Skipped: skipped}

	for _, row := range rows {
		registered, err := tasks.Register(ctx, task.Issue{
			ID:           row.IssueID,
			RepoFullName: p.RepoFullName,
			Provider:     p.Provider,
			Role:         row.Role,
			Estimation:   row.Estimation,
			PullRequest:  row.PullRequest,
		})
		if errors.Is(err, scope.ErrConflict) {
			result.Skipped = append(result.Skipped, &RowError{Line: row.Line, Err: err})
			continue
		}

		if err != nil {
			return result, fmt.Errorf("line %d: %w", row.Line, err)
		}

		result.Registered = append(result.Registered, registered)
	}

	slog.Info("issues imported", "project", p, "registered", len(result.Registered), "skipped", len(result.Skipped))

	return result, nil
}
