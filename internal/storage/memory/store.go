// Package memory keeps every repository in process memory. It backs the demo
// mode of the binaries and the behavioural tests of the views.
package memory

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// Store implements contract.Repository, task.Repository, invoice.Repository
// and resignation.Repository. Slices keep insertion order, which is the order
// lists are streamed in.
type Store struct {
	mu sync.RWMutex

	contracts        []*contract.Contract
	tasks            []*task.Task
	invoices         []*invoice.Invoice
	invoicedTasks    []*invoice.InvoicedTask
	payments         []*invoice.Payment
	platformInvoices []*invoice.PlatformInvoice
	resignations     []*resignation.Resignation

	lastInvoiceID         int
	lastInvoicedTaskID    int
	lastPlatformInvoiceID int

	now func() time.Time
}

var (
	_ contract.Repository    = (*Store)(nil)
	_ task.Repository        = (*Store)(nil)
	_ invoice.Repository     = (*Store)(nil)
	_ resignation.Repository = (*Store)(nil)
)

type Option func(*Store)

// WithClock replaces the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		now: func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// stream yields copies of the elements of the snapshot taken when iteration
// starts, so callers never share memory with the store. Stored entities are
// never mutated in place, updates swap in a fresh pointer, so the snapshot is
// safe to read after the lock is released.
func stream[T any](s *Store, snapshot func() []*T, keep func(*T) bool) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		s.mu.RLock()
		items := slices.Clone(snapshot())
		s.mu.RUnlock()

		for _, v := range items {
			if keep != nil && !keep(v) {
				continue
			}

			cp := *v
			if !yield(&cp, nil) {
				return
			}
		}
	}
}
