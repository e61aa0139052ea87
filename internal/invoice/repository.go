package invoice

import (
	"context"
	"iter"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
)

// Repository persists invoices and everything hanging off them. RegisterAsPaid
// must mark the invoice paid, store the successful payment and the platform
// invoice atomically.
//
//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, c contract.ID) (*Invoice, error)
	GetInvoice(ctx context.Context, id ID) (*Invoice, error)
	ListInvoices(ctx context.Context, c contract.ID) iter.Seq2[*Invoice, error]
	RegisterAsPaid(ctx context.Context, id ID, params PaidParams) (*Payment, error)
	GetPlatformInvoice(ctx context.Context, id ID) (*PlatformInvoice, error)

	RegisterInvoicedTask(ctx context.Context, entry InvoicedTask) (*InvoicedTask, error)
	ListInvoicedTasks(ctx context.Context, id ID) iter.Seq2[*InvoicedTask, error]

	RegisterPayment(ctx context.Context, p Payment) (*Payment, error)
	ListPayments(ctx context.Context, id ID) iter.Seq2[*Payment, error]
}
