package contract

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=contract
type Repository interface {
	AddContract(ctx context.Context, id ID, hourlyRate decimal.Decimal) (*Contract, error)
	GetContract(ctx context.Context, id ID) (*Contract, error)
	ListContracts(ctx context.Context, filter Filter) iter.Seq2[*Contract, error]
	UpdateHourlyRate(ctx context.Context, id ID, hourlyRate decimal.Decimal) (*Contract, error)
	MarkForRemoval(ctx context.Context, id ID, at time.Time) (*Contract, error)
	RemoveContract(ctx context.Context, id ID) error
}

// Filter narrows ListContracts. Nil fields are not constrained.
type Filter struct {
	Project     *scope.Project
	Contributor *scope.Contributor
}

// Contains reports whether c falls inside the filter.
func (f Filter) Contains(c *Contract) bool {
	if f.Project != nil && !f.Project.Matches(c.Project()) {
		return false
	}

	if f.Contributor != nil && !f.Contributor.Matches(c.Contributor()) {
		return false
	}

	return true
}

func (f Filter) String() string {
	switch {
	case f.Project != nil && f.Contributor != nil:
		return f.Project.String() + " of " + f.Contributor.String()
	case f.Project != nil:
		return f.Project.String()
	case f.Contributor != nil:
		return f.Contributor.String()
	default:
		return "all"
	}
}
