package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

func (s *Store) AddContract(_ context.Context, id contract.ID, hourlyRate decimal.Decimal) (*contract.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contractIndex(id) >= 0 {
		return nil, fmt.Errorf("contract %s: %w", id, scope.ErrConflict)
	}

	c := &contract.Contract{ID: id, HourlyRate: hourlyRate}
	s.contracts = append(s.contracts, c)

	cp := *c

	return &cp, nil
}

func (s *Store) GetContract(_ context.Context, id contract.ID) (*contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.contractIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	cp := *s.contracts[i]

	return &cp, nil
}

func (s *Store) ListContracts(_ context.Context, filter contract.Filter) iter.Seq2[*contract.Contract, error] {
	return stream(s, func() []*contract.Contract { return s.contracts }, filter.Contains)
}

func (s *Store) UpdateHourlyRate(_ context.Context, id contract.ID, hourlyRate decimal.Decimal) (*contract.Contract, error) {
	return s.updateContract(id, func(c *contract.Contract) {
		c.HourlyRate = hourlyRate
	})
}

func (s *Store) MarkForRemoval(_ context.Context, id contract.ID, at time.Time) (*contract.Contract, error) {
	return s.updateContract(id, func(c *contract.Contract) {
		c.MarkedForRemoval = &at
	})
}

func (s *Store) RemoveContract(_ context.Context, id contract.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contractIndex(id)
	if i < 0 {
		return fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	if slices.ContainsFunc(s.invoices, func(inv *invoice.Invoice) bool { return inv.Contract.Matches(id) }) {
		return fmt.Errorf("contract %s has invoices: %w", id, scope.ErrConflict)
	}

	s.contracts = slices.Delete(s.contracts, i, i+1)

	return nil
}

func (s *Store) updateContract(id contract.ID, update func(*contract.Contract)) (*contract.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contractIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	next := *s.contracts[i]
	update(&next)
	s.contracts[i] = &next

	cp := next

	return &cp, nil
}

func (s *Store) contractIndex(id contract.ID) int {
	return slices.IndexFunc(s.contracts, func(c *contract.Contract) bool {
		return c.ID.Matches(id)
	})
}
