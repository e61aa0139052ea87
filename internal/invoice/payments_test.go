package invoice_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

func reason(s string) *string {
	return &s
}

func TestValidateStatus(t *testing.T) {
	type testCase struct {
		name       string
		status     invoice.Status
		failReason *string
		wantErr    error
	}

	tests := []testCase{
		{name: "SuccessfulWithoutReason", status: invoice.StatusSuccessful},
		{name: "FailedWithReason", status: invoice.StatusFailed, failReason: reason("insufficient funds")},
		{name: "SuccessfulWithReason", status: invoice.StatusSuccessful, failReason: reason("oops"), wantErr: invoice.ErrFailReason},
		{name: "FailedWithoutReason", status: invoice.StatusFailed, wantErr: invoice.ErrFailReason},
		{name: "Unknown", status: "PENDING", wantErr: invoice.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := invoice.ValidateStatus(tt.status, tt.failReason)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPayments_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	inv := openInvoice(1, devContract, base)
	payments := invoice.NewPaymentsFrom(repo, inv.ID, nil)

	failedAt := base.Add(time.Hour)
	settledAt := base.Add(2 * time.Hour)

	repo.EXPECT().
		RegisterPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p invoice.Payment) (*invoice.Payment, error) {
			return &p, nil
		}).
		Times(2)

	_, err := payments.Register(context.Background(), inv, "tx-1", failedAt, decimal.NewFromInt(100), invoice.StatusFailed, reason("limit exceeded"))
	require.NoError(t, err)

	_, err = payments.Register(context.Background(), inv, "tx-2", settledAt, decimal.NewFromInt(100), invoice.StatusSuccessful, nil)
	require.NoError(t, err)

	got, err := payments.GetByID(context.Background(), invoice.PaymentID{
		Invoice:       1,
		PaymentTime:   failedAt.In(time.FixedZone("EET", 2*60*60)),
		TransactionID: "tx-1",
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, invoice.StatusFailed, got.Status)

	ok, err := payments.Successful(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ok)
	assert.Equal(t, "tx-2", ok.TransactionID)
	assert.Nil(t, ok.FailReason)
}

func TestPayments_RegisterRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	payments := invoice.NewPayments(repo, 1)

	_, err := payments.Register(context.Background(), openInvoice(2, devContract, base), "tx", base, decimal.Zero, invoice.StatusSuccessful, nil)
	assert.ErrorIs(t, err, scope.ErrMismatch)

	_, err = payments.Register(context.Background(), openInvoice(1, devContract, base), "tx", base, decimal.Zero, invoice.StatusFailed, nil)
	assert.ErrorIs(t, err, invoice.ErrFailReason)

	_, err = payments.Register(context.Background(), openInvoice(1, devContract, base), "tx", base, decimal.NewFromInt(-1), invoice.StatusSuccessful, nil)
	assert.ErrorIs(t, err, invoice.ErrNegativeAmount)
}

func TestPayments_OfInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	payments := invoice.NewPayments(repo, 1)

	same, err := payments.OfInvoice(1)
	require.NoError(t, err)
	assert.Same(t, payments, same)

	_, err = payments.OfInvoice(2)
	assert.ErrorIs(t, err, scope.ErrMismatch)
}
