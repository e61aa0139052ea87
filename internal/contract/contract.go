package contract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

// Roles a contributor can be contracted for.
const (
	RoleDev       = "DEV"
	RoleReviewer  = "REV"
	RoleQA        = "QA"
	RoleArchitect = "ARCH"
	RoleOwner     = "PO"
)

var (
	ErrInvalidRole  = errors.New("contract role must not be empty")
	ErrNegativeRate = errors.New("hourly rate must not be negative")
)

// ID identifies a contract: one contributor, one project, one role.
type ID struct {
	RepoFullName        string
	ContributorUsername string
	Provider            string
	Role                string
}

func (id ID) Project() scope.Project {
	return scope.Project{RepoFullName: id.RepoFullName, Provider: id.Provider}
}

func (id ID) Contributor() scope.Contributor {
	return scope.Contributor{Username: id.ContributorUsername, Provider: id.Provider}
}

func (id ID) String() string {
	return fmt.Sprintf("%s/%s/%s as %s",
		strings.ToLower(id.Provider), id.RepoFullName, id.ContributorUsername, strings.ToUpper(id.Role))
}

// Matches compares repo, provider and role case-insensitively and the
// contributor username exactly.
func (id ID) Matches(other ID) bool {
	return id.Project().Matches(other.Project()) &&
		id.ContributorUsername == other.ContributorUsername &&
		strings.EqualFold(id.Role, other.Role)
}

// Contract binds a contributor to a project at an hourly rate.
type Contract struct {
	ID               ID
	HourlyRate       decimal.Decimal
	MarkedForRemoval *time.Time
}

func (c *Contract) Project() scope.Project {
	return c.ID.Project()
}

func (c *Contract) Contributor() scope.Contributor {
	return c.ID.Contributor()
}

// Validate checks the invariants a contract must satisfy before it is stored.
func Validate(id ID, hourlyRate decimal.Decimal) error {
	if strings.TrimSpace(id.Role) == "" {
		return ErrInvalidRole
	}

	if hourlyRate.IsNegative() {
		return ErrNegativeRate
	}

	return nil
}
