// Package wallet settles invoices without moving real money.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
)

const reasonInsufficientFunds = "insufficient funds"

// Fake pays invoices out of a fixed cash limit. A payment that would exceed
// the remaining cash is recorded as FAILED and leaves the invoice open.
type Fake struct {
	repo invoice.Repository

	mu        sync.Mutex
	remaining decimal.Decimal

	now func() time.Time
}

func NewFake(repo invoice.Repository, cashLimit decimal.Decimal) *Fake {
	return &Fake{
		repo:      repo,
		remaining: cashLimit,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Remaining returns the cash still available.
func (f *Fake) Remaining() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.remaining
}

// Charge describes taxes applied when settling an invoice.
type Charge struct {
	ContributorVat decimal.Decimal
	EurToRon       decimal.Decimal
}

// Pay settles inv for the sum of its invoiced task values and returns the
// payment attempt that was recorded.
func (f *Fake) Pay(ctx context.Context, inv *invoice.Invoice, charge Charge) (*invoice.Payment, error) {
	if inv.IsPaid() {
		return nil, fmt.Errorf("%s: %w", inv.ID, invoice.ErrAlreadyPaid)
	}

	total, err := f.total(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	txID := uuid.NewString()
	at := f.now()

	if total.GreaterThan(f.remaining) {
		reason := reasonInsufficientFunds

		payment, err := invoice.NewPayments(f.repo, inv.ID).
			Register(ctx, inv, txID, at, total, invoice.StatusFailed, &reason)
		if err != nil {
			return nil, fmt.Errorf("recording failed payment: %w", err)
		}

		slog.Warn("payment failed", "invoice", inv.ID, "amount", total, "remaining", f.remaining, "transaction_id", txID)

		return payment, nil
	}

	payment, err := invoice.NewContractInvoices(f.repo, inv.Contract).RegisterAsPaid(ctx, inv, invoice.PaidParams{
		TransactionID:  txID,
		PaymentTime:    at,
		Value:          total,
		ContributorVat: charge.ContributorVat,
		EurToRon:       charge.EurToRon,
	})
	if err != nil {
		return nil, err
	}

	f.remaining = f.remaining.Sub(total)

	slog.Info("invoice paid", "invoice", inv.ID, "amount", total, "transaction_id", txID)

	return payment, nil
}

func (f *Fake) total(ctx context.Context, id invoice.ID) (decimal.Decimal, error) {
	total := decimal.Zero

	for it, err := range invoice.NewInvoicedTasks(f.repo, id).All(ctx) {
		if err != nil {
			return decimal.Zero, fmt.Errorf("summing invoice: %w", err)
		}

		total = total.Add(it.Value)
	}

	return total, nil
}
