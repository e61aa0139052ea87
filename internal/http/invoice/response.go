package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
)

type invoiceResponse struct {
	ID            invoice.ID `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Paid          bool       `json:"paid"`
	PaymentTime   *time.Time `json:"payment_time,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		CreatedAt:     inv.CreatedAt,
		Paid:          inv.IsPaid(),
		PaymentTime:   inv.PaymentTime,
		TransactionID: inv.TransactionID,
	}
}

type invoicedTaskResponse struct {
	ID                    int             `json:"id"`
	Task                  string          `json:"task"`
	Value                 decimal.Decimal `json:"value"`
	ProjectCommission     decimal.Decimal `json:"project_commission"`
	ContributorCommission decimal.Decimal `json:"contributor_commission"`
	InvoicedAt            time.Time       `json:"invoiced_at"`
}

func toInvoicedTaskResponse(it *invoice.InvoicedTask) invoicedTaskResponse {
	return invoicedTaskResponse{
		ID:                    it.ID,
		Task:                  it.Task.String(),
		Value:                 it.Value,
		ProjectCommission:     it.ProjectCommission,
		ContributorCommission: it.ContributorCommission,
		InvoicedAt:            it.InvoicedAt,
	}
}

type paymentResponse struct {
	TransactionID string          `json:"transaction_id"`
	PaymentTime   time.Time       `json:"payment_time"`
	Value         decimal.Decimal `json:"value"`
	Status        invoice.Status  `json:"status"`
	FailReason    *string         `json:"fail_reason,omitempty"`
}

func toPaymentResponse(p *invoice.Payment) paymentResponse {
	return paymentResponse{
		TransactionID: p.TransactionID,
		PaymentTime:   p.PaymentTime,
		Value:         p.Value,
		Status:        p.Status,
		FailReason:    p.FailReason,
	}
}

type platformInvoiceResponse struct {
	ID            int             `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	Commission    decimal.Decimal `json:"commission"`
	Vat           decimal.Decimal `json:"vat"`
	EurToRon      decimal.Decimal `json:"eur_to_ron"`
	TransactionID string          `json:"transaction_id"`
	PaymentTime   time.Time       `json:"payment_time"`
}

func toPlatformInvoiceResponse(pi *invoice.PlatformInvoice) platformInvoiceResponse {
	return platformInvoiceResponse{
		ID:            pi.ID,
		CreatedAt:     pi.CreatedAt,
		Commission:    pi.Commission,
		Vat:           pi.Vat,
		EurToRon:      pi.EurToRon,
		TransactionID: pi.TransactionID,
		PaymentTime:   pi.PaymentTime,
	}
}

func mapSlice[T, R any](items []T, f func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, f(item))
	}

	return out
}
