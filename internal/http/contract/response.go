package contract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
)

type contractResponse struct {
	RepoFullName        string          `json:"repo_full_name"`
	ContributorUsername string          `json:"contributor_username"`
	Provider            string          `json:"provider"`
	Role                string          `json:"role"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	MarkedForRemoval    *time.Time      `json:"marked_for_removal,omitempty"`
}

func toResponse(c *contract.Contract) contractResponse {
	return contractResponse{
		RepoFullName:        c.ID.RepoFullName,
		ContributorUsername: c.ID.ContributorUsername,
		Provider:            c.ID.Provider,
		Role:                c.ID.Role,
		HourlyRate:          c.HourlyRate,
		MarkedForRemoval:    c.MarkedForRemoval,
	}
}

func toResponses(cs []*contract.Contract) []contractResponse {
	out := make([]contractResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toResponse(c))
	}

	return out
}
