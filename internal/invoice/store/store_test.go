//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	contractstore "github.com/MrJamesThe3rd/paidwork/internal/contract/store"
	"github.com/MrJamesThe3rd/paidwork/internal/database/databasetest"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice/store"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

func TestStore_InvoicePayment(t *testing.T) {
	ctx := context.Background()
	db := databasetest.NewPostgres(t)
	s := store.New(db)

	c := contract.ID{RepoFullName: "mihai/repo1", ContributorUsername: "mihai", Provider: "github", Role: contract.RoleDev}

	_, err := contractstore.New(db).AddContract(ctx, c, decimal.NewFromInt(20))
	require.NoError(t, err)

	first, err := s.CreateInvoice(ctx, c)
	require.NoError(t, err)
	assert.False(t, first.IsPaid())

	second, err := s.CreateInvoice(ctx, c)
	require.NoError(t, err)

	listed, err := scope.Collect(s.ListInvoices(ctx, c))
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)

	_, err = s.RegisterInvoicedTask(ctx, invoice.InvoicedTask{
		Invoice:               first.ID,
		Task:                  task.ID{IssueID: "1", RepoFullName: "mihai/repo1", Provider: "github"},
		Value:                 decimal.NewFromInt(100),
		ProjectCommission:     decimal.NewFromInt(6),
		ContributorCommission: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	reason := "card declined"

	_, err = s.RegisterPayment(ctx, invoice.Payment{
		Invoice:       first.ID,
		TransactionID: "tx-0",
		PaymentTime:   time.Now().UTC(),
		Value:         decimal.NewFromInt(100),
		Status:        invoice.StatusFailed,
		FailReason:    &reason,
	})
	require.NoError(t, err)

	paidAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	payment, err := s.RegisterAsPaid(ctx, first.ID, invoice.PaidParams{
		TransactionID:  "tx-1",
		PaymentTime:    paidAt,
		Value:          decimal.NewFromInt(100),
		ContributorVat: decimal.RequireFromString("0.19"),
		EurToRon:       decimal.RequireFromString("4.9750"),
	})
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusSuccessful, payment.Status)
	assert.Nil(t, payment.FailReason)

	_, err = s.RegisterAsPaid(ctx, first.ID, invoice.PaidParams{TransactionID: "tx-2", PaymentTime: paidAt})
	assert.ErrorIs(t, err, invoice.ErrAlreadyPaid)

	paid, err := s.GetInvoice(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid())

	pi, err := s.GetPlatformInvoice(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(pi.Commission), "commission %s", pi.Commission)
	assert.True(t, decimal.RequireFromString("1.9").Equal(pi.Vat), "vat %s", pi.Vat)

	payments, err := scope.Collect(s.ListPayments(ctx, first.ID))
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	_, err = s.GetPlatformInvoice(ctx, second.ID)
	assert.ErrorIs(t, err, scope.ErrNotFound)
}
