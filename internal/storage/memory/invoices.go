package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

func (s *Store) CreateInvoice(_ context.Context, c contract.ID) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contractIndex(c)
	if i < 0 {
		return nil, fmt.Errorf("contract %s: %w", c, scope.ErrNotFound)
	}

	s.lastInvoiceID++

	inv := &invoice.Invoice{
		ID:        invoice.ID(s.lastInvoiceID),
		Contract:  s.contracts[i].ID,
		CreatedAt: s.now(),
	}
	s.invoices = append(s.invoices, inv)

	cp := *inv

	return &cp, nil
}

func (s *Store) GetInvoice(_ context.Context, id invoice.ID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.invoiceIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", id, scope.ErrNotFound)
	}

	cp := *s.invoices[i]

	return &cp, nil
}

func (s *Store) ListInvoices(_ context.Context, c contract.ID) iter.Seq2[*invoice.Invoice, error] {
	return stream(s, func() []*invoice.Invoice { return s.invoices }, func(inv *invoice.Invoice) bool {
		return inv.Contract.Matches(c)
	})
}

// RegisterAsPaid marks the invoice paid and records the successful payment and
// the platform invoice under one lock.
func (s *Store) RegisterAsPaid(_ context.Context, id invoice.ID, params invoice.PaidParams) (*invoice.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.invoiceIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", id, scope.ErrNotFound)
	}

	if s.invoices[i].IsPaid() {
		return nil, fmt.Errorf("%s: %w", id, invoice.ErrAlreadyPaid)
	}

	s.invoices[i] = s.invoices[i].Paid(params.TransactionID, params.PaymentTime)

	payment := &invoice.Payment{
		Invoice:       id,
		TransactionID: params.TransactionID,
		PaymentTime:   params.PaymentTime,
		Value:         params.Value,
		Status:        invoice.StatusSuccessful,
	}
	s.payments = append(s.payments, payment)

	commission := decimal.Zero

	for _, it := range s.invoicedTasks {
		if it.Invoice == id {
			commission = commission.Add(it.ProjectCommission).Add(it.ContributorCommission)
		}
	}

	s.lastPlatformInvoiceID++
	s.platformInvoices = append(s.platformInvoices, &invoice.PlatformInvoice{
		ID:            s.lastPlatformInvoiceID,
		Invoice:       id,
		CreatedAt:     s.now(),
		Commission:    commission,
		Vat:           commission.Mul(params.ContributorVat).Round(2),
		EurToRon:      params.EurToRon,
		TransactionID: params.TransactionID,
		PaymentTime:   params.PaymentTime,
	})

	cp := *payment

	return &cp, nil
}

func (s *Store) GetPlatformInvoice(_ context.Context, id invoice.ID) (*invoice.PlatformInvoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.platformInvoices, func(pi *invoice.PlatformInvoice) bool {
		return pi.Invoice == id
	})
	if i < 0 {
		return nil, fmt.Errorf("platform invoice for %s: %w", id, scope.ErrNotFound)
	}

	cp := *s.platformInvoices[i]

	return &cp, nil
}

func (s *Store) RegisterInvoicedTask(_ context.Context, entry invoice.InvoicedTask) (*invoice.InvoicedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.invoiceIndex(entry.Invoice) < 0 {
		return nil, fmt.Errorf("%s: %w", entry.Invoice, scope.ErrConflict)
	}

	if slices.ContainsFunc(s.invoicedTasks, func(it *invoice.InvoicedTask) bool {
		return it.Invoice == entry.Invoice && it.Task.Matches(entry.Task)
	}) {
		return nil, fmt.Errorf("task %s on %s: %w", entry.Task, entry.Invoice, scope.ErrConflict)
	}

	s.lastInvoicedTaskID++

	entry.ID = s.lastInvoicedTaskID
	entry.InvoicedAt = s.now()
	s.invoicedTasks = append(s.invoicedTasks, &entry)

	cp := entry

	return &cp, nil
}

func (s *Store) ListInvoicedTasks(_ context.Context, id invoice.ID) iter.Seq2[*invoice.InvoicedTask, error] {
	return stream(s, func() []*invoice.InvoicedTask { return s.invoicedTasks }, func(it *invoice.InvoicedTask) bool {
		return it.Invoice == id
	})
}

func (s *Store) RegisterPayment(_ context.Context, p invoice.Payment) (*invoice.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.invoiceIndex(p.Invoice) < 0 {
		return nil, fmt.Errorf("%s: %w", p.Invoice, scope.ErrConflict)
	}

	if slices.ContainsFunc(s.payments, func(existing *invoice.Payment) bool {
		return existing.HasID(p.ID())
	}) {
		return nil, fmt.Errorf("payment %s on %s: %w", p.TransactionID, p.Invoice, scope.ErrConflict)
	}

	s.payments = append(s.payments, &p)

	cp := p

	return &cp, nil
}

func (s *Store) ListPayments(_ context.Context, id invoice.ID) iter.Seq2[*invoice.Payment, error] {
	return stream(s, func() []*invoice.Payment { return s.payments }, func(p *invoice.Payment) bool {
		return p.Invoice == id
	})
}

func (s *Store) invoiceIndex(id invoice.ID) int {
	return slices.IndexFunc(s.invoices, func(inv *invoice.Invoice) bool {
		return inv.ID == id
	})
}
