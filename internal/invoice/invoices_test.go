package invoice_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

var (
	devContract = contract.ID{
		RepoFullName:        "mihai/repo1",
		ContributorUsername: "mihai",
		Provider:            "github",
		Role:                contract.RoleDev,
	}
	qaContract = contract.ID{
		RepoFullName:        "mihai/repo1",
		ContributorUsername: "mihai",
		Provider:            "github",
		Role:                contract.RoleQA,
	}
	base = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func openInvoice(id int, c contract.ID, createdAt time.Time) *invoice.Invoice {
	return &invoice.Invoice{ID: invoice.ID(id), Contract: c, CreatedAt: createdAt}
}

func paidInvoice(id int, c contract.ID, createdAt time.Time) *invoice.Invoice {
	return openInvoice(id, c, createdAt).Paid("tx-paid", createdAt.Add(time.Hour))
}

func TestContractInvoices_Active(t *testing.T) {
	type testCase struct {
		name  string
		items []*invoice.Invoice
		want  invoice.ID
	}

	tests := []testCase{
		{
			name: "OldestUnpaidWins",
			items: []*invoice.Invoice{
				openInvoice(3, devContract, base.Add(2*time.Hour)),
				paidInvoice(1, devContract, base),
				openInvoice(2, devContract, base.Add(time.Hour)),
			},
			want: 2,
		},
		{
			name: "TiesKeepStorageOrder",
			items: []*invoice.Invoice{
				openInvoice(5, devContract, base),
				openInvoice(4, devContract, base),
			},
			want: 5,
		},
		{
			name: "IgnoresOtherContracts",
			items: []*invoice.Invoice{
				openInvoice(1, qaContract, base),
				openInvoice(2, devContract, base.Add(time.Minute)),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			invoices := invoice.NewContractInvoicesFrom(repo, devContract, tt.items)

			got, err := invoices.Active(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestOldestUnpaid(t *testing.T) {
	assert.Nil(t, invoice.OldestUnpaid(nil))
	assert.Nil(t, invoice.OldestUnpaid([]*invoice.Invoice{paidInvoice(1, devContract, base)}))

	got := invoice.OldestUnpaid([]*invoice.Invoice{
		openInvoice(7, devContract, base.Add(time.Hour)),
		openInvoice(8, devContract, base),
		openInvoice(9, devContract, base),
	})
	require.NotNil(t, got)
	assert.Equal(t, invoice.ID(8), got.ID)
}

func TestContractInvoices_ActiveCreatesWhenAllPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoicesFrom(repo, devContract, []*invoice.Invoice{
		paidInvoice(1, devContract, base),
	})

	repo.EXPECT().
		CreateInvoice(gomock.Any(), devContract).
		Return(openInvoice(2, devContract, base.Add(time.Hour)), nil).
		Times(1)

	first, err := invoices.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, invoice.ID(2), first.ID)

	// The created invoice is now part of the view and stays active.
	second, err := invoices.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	n, err := invoices.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestContractInvoices_LazyActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)

	repo.EXPECT().
		ListInvoices(gomock.Any(), devContract).
		DoAndReturn(func(_ context.Context, _ contract.ID) iter.Seq2[*invoice.Invoice, error] {
			return scope.Values(
				openInvoice(7, devContract, base.Add(time.Hour)),
				openInvoice(6, devContract, base),
			)
		})

	got, err := invoice.NewContractInvoices(repo, devContract).Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, invoice.ID(6), got.ID)
}

func TestContractInvoices_ActiveStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	boom := errors.New("connection reset")

	repo.EXPECT().
		ListInvoices(gomock.Any(), devContract).
		Return(scope.Failed[*invoice.Invoice](boom))

	_, err := invoice.NewContractInvoices(repo, devContract).Active(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestContractInvoices_OfContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoices(repo, devContract)

	same, err := invoices.OfContract(devContract)
	require.NoError(t, err)
	assert.Same(t, invoices, same)

	_, err = invoices.OfContract(qaContract)
	assert.ErrorIs(t, err, scope.ErrMismatch)
}

func TestContractInvoices_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoicesFrom(repo, devContract, []*invoice.Invoice{
		openInvoice(1, devContract, base),
		openInvoice(2, qaContract, base),
	})

	got, err := invoices.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	outside, err := invoices.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, outside)
}

func TestContractInvoices_RegisterAsPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	open := openInvoice(1, devContract, base)
	invoices := invoice.NewContractInvoicesFrom(repo, devContract, []*invoice.Invoice{open})

	params := invoice.PaidParams{
		TransactionID:  "tx-1",
		PaymentTime:    base.Add(24 * time.Hour),
		Value:          decimal.NewFromInt(250),
		ContributorVat: decimal.NewFromInt(19),
		EurToRon:       decimal.RequireFromString("4.97"),
	}

	repo.EXPECT().
		RegisterAsPaid(gomock.Any(), invoice.ID(1), params).
		Return(&invoice.Payment{
			Invoice:       1,
			TransactionID: "tx-1",
			PaymentTime:   params.PaymentTime,
			Value:         params.Value,
			Status:        invoice.StatusSuccessful,
		}, nil)

	stored := openInvoice(1, devContract, base).Paid("tx-1", params.PaymentTime)

	repo.EXPECT().
		GetInvoice(gomock.Any(), invoice.ID(1)).
		Return(stored, nil)

	repo.EXPECT().
		CreateInvoice(gomock.Any(), devContract).
		Return(openInvoice(2, devContract, base.Add(48*time.Hour)), nil)

	payment, err := invoices.RegisterAsPaid(context.Background(), open, params)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusSuccessful, payment.Status)
	assert.False(t, open.IsPaid(), "caller's invoice must not be mutated")

	paid, err := invoices.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, stored, paid, "view must hold the stored invoice")

	active, err := invoices.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, invoice.ID(2), active.ID)

	_, err = invoices.RegisterAsPaid(context.Background(), paid, params)
	assert.ErrorIs(t, err, invoice.ErrAlreadyPaid)
}

func TestContractInvoices_RegisterAsPaidRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoices(repo, devContract)

	type args struct {
		inv    *invoice.Invoice
		params invoice.PaidParams
	}

	type testCase struct {
		name    string
		args    args
		wantErr error
	}

	tests := []testCase{
		{
			name:    "OtherContract",
			args:    args{inv: openInvoice(1, qaContract, base), params: invoice.PaidParams{TransactionID: "tx"}},
			wantErr: scope.ErrMismatch,
		},
		{
			name: "NegativeValue",
			args: args{
				inv:    openInvoice(1, devContract, base),
				params: invoice.PaidParams{TransactionID: "tx", Value: decimal.NewFromInt(-1)},
			},
			wantErr: invoice.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invoices.RegisterAsPaid(context.Background(), tt.args.inv, tt.args.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContractInvoices_RegisterAsPaidUnknownInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoices(repo, devContract)

	repo.EXPECT().
		ListInvoices(gomock.Any(), devContract).
		Return(scope.Values(openInvoice(1, devContract, base)))

	forged := openInvoice(7, devContract, base)

	_, err := invoices.RegisterAsPaid(context.Background(), forged, invoice.PaidParams{TransactionID: "tx"})
	assert.ErrorIs(t, err, scope.ErrNotFound)
}

func TestContractInvoices_RegisterAsPaidStoredCopyPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoicesFrom(repo, devContract, []*invoice.Invoice{paidInvoice(1, devContract, base)})

	stale := openInvoice(1, devContract, base)

	_, err := invoices.RegisterAsPaid(context.Background(), stale, invoice.PaidParams{TransactionID: "tx"})
	assert.ErrorIs(t, err, invoice.ErrAlreadyPaid)
}

func TestContractInvoices_PlatformInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	invoices := invoice.NewContractInvoices(repo, devContract)

	repo.EXPECT().
		ListInvoices(gomock.Any(), devContract).
		Return(scope.Values(paidInvoice(1, devContract, base))).
		Times(2)

	repo.EXPECT().
		GetPlatformInvoice(gomock.Any(), invoice.ID(1)).
		Return(&invoice.PlatformInvoice{ID: 10, Invoice: 1, Commission: decimal.NewFromInt(5)}, nil)

	pi, err := invoices.PlatformInvoice(context.Background(), paidInvoice(1, devContract, base))
	require.NoError(t, err)
	assert.Equal(t, 10, pi.ID)

	_, err = invoices.PlatformInvoice(context.Background(), paidInvoice(2, qaContract, base))
	assert.ErrorIs(t, err, scope.ErrMismatch)

	_, err = invoices.PlatformInvoice(context.Background(), paidInvoice(9, devContract, base))
	assert.ErrorIs(t, err, scope.ErrNotFound)
}
