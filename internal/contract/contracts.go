package contract

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

// Contracts is a view over the contracts of a project, of a contributor, of
// both, or of the whole storage when no scope is set.
type Contracts struct {
	repo   Repository
	filter Filter
	seq    scope.Seq[*Contract]
}

// NewContracts returns a lazy view over every stored contract.
func NewContracts(repo Repository) *Contracts {
	return newContracts(repo, Filter{})
}

// NewProjectContracts returns a lazy view over the contracts of p.
func NewProjectContracts(repo Repository, p scope.Project) *Contracts {
	return newContracts(repo, Filter{Project: &p})
}

// NewContributorContracts returns a lazy view over the contracts of c.
func NewContributorContracts(repo Repository, c scope.Contributor) *Contracts {
	return newContracts(repo, Filter{Contributor: &c})
}

// NewContractsFrom returns a list-backed view over items. Items outside filter
// are never yielded.
func NewContractsFrom(repo Repository, filter Filter, items []*Contract) *Contracts {
	return &Contracts{
		repo:   repo,
		filter: filter,
		seq:    scope.List(items).Where(filter.Contains),
	}
}

func newContracts(repo Repository, filter Filter) *Contracts {
	return &Contracts{
		repo:   repo,
		filter: filter,
		seq:    scope.Lazy(listContracts(repo, filter)).Where(filter.Contains),
	}
}

func listContracts(repo Repository, filter Filter) scope.Loader[*Contract] {
	return func(ctx context.Context) iter.Seq2[*Contract, error] {
		return repo.ListContracts(ctx, filter)
	}
}

// Scope returns the filter this view was narrowed to.
func (c *Contracts) Scope() Filter {
	return c.filter
}

// OfProject narrows the view to p. It returns c itself when c is already
// scoped to p.
func (c *Contracts) OfProject(p scope.Project) (*Contracts, error) {
	narrowed, err := scope.Narrow("project", c.filter.Project, p)
	if err != nil {
		return nil, err
	}

	if !narrowed {
		return c, nil
	}

	filter := c.filter
	filter.Project = &p

	return c.derive(filter), nil
}

// OfContributor narrows the view to contributor. It returns c itself when c is
// already scoped to contributor.
func (c *Contracts) OfContributor(contributor scope.Contributor) (*Contracts, error) {
	narrowed, err := scope.Narrow("contributor", c.filter.Contributor, contributor)
	if err != nil {
		return nil, err
	}

	if !narrowed {
		return c, nil
	}

	filter := c.filter
	filter.Contributor = &contributor

	return c.derive(filter), nil
}

func (c *Contracts) derive(filter Filter) *Contracts {
	return &Contracts{
		repo:   c.repo,
		filter: filter,
		seq:    c.seq.Derive(listContracts(c.repo, filter), filter.Contains),
	}
}

// All iterates the contracts in scope. Every call starts a new iteration.
func (c *Contracts) All(ctx context.Context) iter.Seq2[*Contract, error] {
	return c.seq.All(ctx)
}

// GetByID returns the contract with the given id, or nil if it is not in scope.
func (c *Contracts) GetByID(ctx context.Context, id ID) (*Contract, error) {
	found, ok, err := scope.Find(c.seq.All(ctx), func(k *Contract) bool {
		return k.ID.Matches(id)
	})
	if err != nil {
		return nil, fmt.Errorf("finding contract: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return found, nil
}

func (c *Contracts) Count(ctx context.Context) (int, error) {
	return scope.Count(c.seq.All(ctx))
}

// Add stores a new contract. The contract must belong to this view's scope.
func (c *Contracts) Add(ctx context.Context, id ID, hourlyRate decimal.Decimal) (*Contract, error) {
	if err := Validate(id, hourlyRate); err != nil {
		return nil, err
	}

	if err := c.check(id); err != nil {
		return nil, err
	}

	added, err := c.repo.AddContract(ctx, id, hourlyRate)
	if err != nil {
		return nil, fmt.Errorf("adding contract: %w", err)
	}

	c.seq.Append(added)

	return added, nil
}

// UpdateHourlyRate changes the rate of a contract in scope. Tasks already
// invoiced keep the value they were invoiced at.
func (c *Contracts) UpdateHourlyRate(ctx context.Context, id ID, hourlyRate decimal.Decimal) (*Contract, error) {
	if hourlyRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	if err := c.mustContain(ctx, id); err != nil {
		return nil, err
	}

	updated, err := c.repo.UpdateHourlyRate(ctx, id, hourlyRate)
	if err != nil {
		return nil, fmt.Errorf("updating hourly rate: %w", err)
	}

	c.seq.Replace(sameID(id), updated)

	return updated, nil
}

// MarkForRemoval flags a contract in scope for removal at the current time.
func (c *Contracts) MarkForRemoval(ctx context.Context, id ID) (*Contract, error) {
	if err := c.mustContain(ctx, id); err != nil {
		return nil, err
	}

	marked, err := c.repo.MarkForRemoval(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("marking contract for removal: %w", err)
	}

	c.seq.Replace(sameID(id), marked)

	return marked, nil
}

// Remove deletes a contract in scope.
func (c *Contracts) Remove(ctx context.Context, id ID) error {
	if err := c.mustContain(ctx, id); err != nil {
		return err
	}

	if err := c.repo.RemoveContract(ctx, id); err != nil {
		return fmt.Errorf("removing contract: %w", err)
	}

	c.seq.Delete(sameID(id))

	return nil
}

func (c *Contracts) check(id ID) error {
	if c.filter.Project != nil {
		if err := scope.Check("project", *c.filter.Project, id.Project()); err != nil {
			return err
		}
	}

	if c.filter.Contributor != nil {
		if err := scope.Check("contributor", *c.filter.Contributor, id.Contributor()); err != nil {
			return err
		}
	}

	return nil
}

func (c *Contracts) mustContain(ctx context.Context, id ID) error {
	if err := c.check(id); err != nil {
		return err
	}

	found, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if found == nil {
		return fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	return nil
}

func sameID(id ID) func(*Contract) bool {
	return func(k *Contract) bool {
		return k.ID.Matches(id)
	}
}
