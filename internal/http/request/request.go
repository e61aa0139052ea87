// Package request reads scope descriptors from chi URL parameters.
package request

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// Project reads {provider}/{owner}/{repo}.
func Project(r *http.Request) scope.Project {
	return scope.Project{
		RepoFullName: chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo"),
		Provider:     chi.URLParam(r, "provider"),
	}
}

// Contributor reads {provider}/{username}.
func Contributor(r *http.Request) scope.Contributor {
	return scope.Contributor{
		Username: chi.URLParam(r, "username"),
		Provider: chi.URLParam(r, "provider"),
	}
}

// ContractID reads the project plus {username}/{role}.
func ContractID(r *http.Request) contract.ID {
	p := Project(r)

	return contract.ID{
		RepoFullName:        p.RepoFullName,
		ContributorUsername: chi.URLParam(r, "username"),
		Provider:            p.Provider,
		Role:                chi.URLParam(r, "role"),
	}
}

// TaskID reads the project plus {issue}. Pull requests are addressed with
// ?pull_request=true.
func TaskID(r *http.Request) task.ID {
	p := Project(r)
	pr, _ := strconv.ParseBool(r.URL.Query().Get("pull_request"))

	return task.ID{
		IssueID:      chi.URLParam(r, "issue"),
		RepoFullName: p.RepoFullName,
		Provider:     p.Provider,
		PullRequest:  pr,
	}
}

// InvoiceID reads {id}.
func InvoiceID(r *http.Request) (invoice.ID, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || n <= 0 {
		return 0, false
	}

	return invoice.ID(n), true
}
