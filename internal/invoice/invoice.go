package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

var (
	ErrAlreadyPaid    = errors.New("invoice is already paid")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ID is assigned by storage when an invoice is created.
type ID int

func (id ID) String() string {
	return fmt.Sprintf("invoice #%d", int(id))
}

func (id ID) Matches(other ID) bool {
	return id == other
}

// Invoice accumulates the invoiced tasks of one contract until it is paid.
type Invoice struct {
	ID            ID
	Contract      contract.ID
	CreatedAt     time.Time
	PaymentTime   *time.Time
	TransactionID *string
}

// IsPaid reports whether the invoice carries both a payment time and a
// transaction id.
func (i *Invoice) IsPaid() bool {
	return i.PaymentTime != nil && i.TransactionID != nil
}

// Paid returns a copy of i settled by the given transaction.
func (i *Invoice) Paid(transactionID string, at time.Time) *Invoice {
	paid := *i
	paid.TransactionID = &transactionID
	paid.PaymentTime = &at

	return &paid
}

// InvoicedTask records what a finished task was worth when it was invoiced.
// Value and commissions are never recomputed afterwards.
type InvoicedTask struct {
	ID                    int
	Invoice               ID
	Task                  task.ID
	Value                 decimal.Decimal
	ProjectCommission     decimal.Decimal
	ContributorCommission decimal.Decimal
	InvoicedAt            time.Time
}

// FinishedTask pairs a task with the value the pricing collaborator assigned
// to it at invoicing time.
type FinishedTask struct {
	Task  *task.Task
	Value decimal.Decimal
}

// PlatformInvoice is the platform's commission invoice, issued by storage when
// a contributor invoice is registered as paid.
type PlatformInvoice struct {
	ID            int
	Invoice       ID
	CreatedAt     time.Time
	Commission    decimal.Decimal
	Vat           decimal.Decimal
	EurToRon      decimal.Decimal
	TransactionID string
	PaymentTime   time.Time
}

// PaidParams describes the settlement of an invoice. VAT and exchange rate are
// passed through to storage untouched.
type PaidParams struct {
	TransactionID  string
	PaymentTime    time.Time
	Value          decimal.Decimal
	ContributorVat decimal.Decimal
	EurToRon       decimal.Decimal
}
