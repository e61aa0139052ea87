package importer

import "strings"

// estimationUnit says how the estimation column is expressed.
type estimationUnit int

const (
	// minutes holds a plain integer or a Go duration ("1h30m").
	minutes estimationUnit = iota
	// hours holds a decimal number of hours ("1.5").
	hours
)

// Profile describes the header of a supported issue export.
type Profile struct {
	Name           string
	IssueCol       string
	RoleCol        string
	EstimationCol  string
	Unit           estimationUnit
	PullRequestCol string // optional
	// PullRequestValues are the cell values, lowercased, that mark a row as a
	// pull request. Empty means the column holds a boolean.
	PullRequestValues []string
}

func (p Profile) requiredCols() []string {
	return []string{p.IssueCol, p.RoleCol, p.EstimationCol}
}

func (p Profile) isPullRequest(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))

	if len(p.PullRequestValues) == 0 {
		switch cell {
		case "true", "yes", "y", "1", "x":
			return true
		}

		return false
	}

	for _, v := range p.PullRequestValues {
		if cell == v {
			return true
		}
	}

	return false
}

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:              "github-project",
		IssueCol:          "number",
		RoleCol:           "role",
		EstimationCol:     "estimate",
		Unit:              hours,
		PullRequestCol:    "type",
		PullRequestValues: []string{"pullrequest", "pull request", "pr"},
	},
	{
		Name:           "paidwork",
		IssueCol:       "issue",
		RoleCol:        "role",
		EstimationCol:  "estimation",
		Unit:           minutes,
		PullRequestCol: "pull_request",
	},
}
