package task

import (
	"time"

	"github.com/MrJamesThe3rd/paidwork/internal/importer"
	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

type assignmentResponse struct {
	Contributor string    `json:"contributor"`
	AssignedAt  time.Time `json:"assigned_at"`
	Deadline    time.Time `json:"deadline"`
}

type taskResponse struct {
	IssueID      string              `json:"issue_id"`
	RepoFullName string              `json:"repo_full_name"`
	Provider     string              `json:"provider"`
	PullRequest  bool                `json:"pull_request"`
	Role         string              `json:"role"`
	Estimation   int                 `json:"estimation"`
	Assignment   *assignmentResponse `json:"assignment,omitempty"`
}

func toResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		IssueID:      t.ID.IssueID,
		RepoFullName: t.ID.RepoFullName,
		Provider:     t.ID.Provider,
		PullRequest:  t.ID.PullRequest,
		Role:         t.Role,
		Estimation:   t.Estimation,
	}

	if a := t.Assignment; a != nil {
		resp.Assignment = &assignmentResponse{
			Contributor: a.Contributor,
			AssignedAt:  a.AssignedAt,
			Deadline:    a.Deadline,
		}
	}

	return resp
}

func toResponses(ts []*task.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toResponse(t))
	}

	return out
}

type resignationResponse struct {
	Task        string    `json:"task"`
	Contributor string    `json:"contributor"`
	Timestamp   time.Time `json:"timestamp"`
	Reason      string    `json:"reason,omitempty"`
}

func toResignationResponse(r *resignation.Resignation) resignationResponse {
	return resignationResponse{
		Task:        r.Task.String(),
		Contributor: r.Contributor,
		Timestamp:   r.Timestamp,
		Reason:      r.Reason,
	}
}

type skippedRowResponse struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type importResponse struct {
	Registered []taskResponse       `json:"registered"`
	Skipped    []skippedRowResponse `json:"skipped"`
}

func toImportResponse(res *importer.Result) importResponse {
	out := importResponse{
		Registered: toResponses(res.Registered),
		Skipped:    make([]skippedRowResponse, 0, len(res.Skipped)),
	}

	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, skippedRowResponse{Line: s.Line, Error: s.Err.Error()})
	}

	return out
}
