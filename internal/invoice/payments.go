package invoice

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

// Payments is a view over the payment attempts made for one invoice.
type Payments struct {
	repo    Repository
	invoice ID
	seq     scope.Seq[*Payment]
}

func NewPayments(repo Repository, id ID) *Payments {
	load := func(ctx context.Context) iter.Seq2[*Payment, error] {
		return repo.ListPayments(ctx, id)
	}

	return &Payments{
		repo:    repo,
		invoice: id,
		seq:     scope.Lazy(load).Where(paying(id)),
	}
}

// NewPaymentsFrom returns a list-backed view over items.
func NewPaymentsFrom(repo Repository, id ID, items []*Payment) *Payments {
	return &Payments{
		repo:    repo,
		invoice: id,
		seq:     scope.List(items).Where(paying(id)),
	}
}

func paying(id ID) func(*Payment) bool {
	return func(p *Payment) bool {
		return p.Invoice == id
	}
}

func (ps *Payments) OfInvoice(id ID) (*Payments, error) {
	if err := scope.Check("invoice", ps.invoice, id); err != nil {
		return nil, err
	}

	return ps, nil
}

func (ps *Payments) All(ctx context.Context) iter.Seq2[*Payment, error] {
	return ps.seq.All(ctx)
}

// GetByID returns the payment with the given identity, or nil when there is
// none.
func (ps *Payments) GetByID(ctx context.Context, id PaymentID) (*Payment, error) {
	found, ok, err := scope.Find(ps.seq.All(ctx), func(p *Payment) bool {
		return p.HasID(id)
	})
	if err != nil {
		return nil, fmt.Errorf("finding payment: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return found, nil
}

// Successful returns the payment that settled the invoice, or nil.
func (ps *Payments) Successful(ctx context.Context) (*Payment, error) {
	found, ok, err := scope.Find(ps.seq.All(ctx), func(p *Payment) bool {
		return p.Status == StatusSuccessful
	})
	if err != nil {
		return nil, fmt.Errorf("finding successful payment: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return found, nil
}

// Register records a payment attempt for inv. failReason must be set for
// FAILED payments and nil for SUCCESSFUL ones.
func (ps *Payments) Register(
	ctx context.Context,
	inv *Invoice,
	transactionID string,
	paymentTime time.Time,
	value decimal.Decimal,
	status Status,
	failReason *string,
) (*Payment, error) {
	if err := scope.Check("invoice", ps.invoice, inv.ID); err != nil {
		return nil, err
	}

	if err := ValidateStatus(status, failReason); err != nil {
		return nil, err
	}

	if value.IsNegative() {
		return nil, ErrNegativeAmount
	}

	registered, err := ps.repo.RegisterPayment(ctx, Payment{
		Invoice:       inv.ID,
		TransactionID: transactionID,
		PaymentTime:   paymentTime,
		Value:         value,
		Status:        status,
		FailReason:    failReason,
	})
	if err != nil {
		return nil, fmt.Errorf("registering payment: %w", err)
	}

	ps.seq.Append(registered)

	return registered, nil
}
