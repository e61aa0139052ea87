package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/storage/memory"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

var repo1 = scope.Project{RepoFullName: "mihai/repo1", Provider: "github"}

// tickingClock returns a clock that advances one minute per call.
func tickingClock() func() time.Time {
	at := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	return func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
}

func devID(username string) contract.ID {
	return contract.ID{
		RepoFullName:        repo1.RepoFullName,
		ContributorUsername: username,
		Provider:            repo1.Provider,
		Role:                contract.RoleDev,
	}
}

func TestStore_InvoicedValueSurvivesRateChange(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithClock(tickingClock()))

	contracts := contract.NewProjectContracts(store, repo1)

	c, err := contracts.Add(ctx, devID("mihai"), decimal.NewFromInt(20))
	require.NoError(t, err)

	tasks := task.NewProjectTasks(store, repo1)

	registered, err := tasks.Register(ctx, task.Issue{
		ID: "1", RepoFullName: repo1.RepoFullName, Provider: repo1.Provider, Role: contract.RoleDev, Estimation: 120,
	})
	require.NoError(t, err)

	assigned, err := tasks.Assign(ctx, registered, c, 5)
	require.NoError(t, err)

	invoices := invoice.NewContractInvoices(store, c.ID)

	active, err := invoices.Active(ctx)
	require.NoError(t, err)

	value := c.HourlyRate.Mul(decimal.NewFromInt(2))

	entry, err := invoice.NewInvoicedTasks(store, active.ID).Register(ctx, active,
		invoice.FinishedTask{Task: assigned, Value: value},
		decimal.NewFromInt(2), decimal.NewFromInt(1),
	)
	require.NoError(t, err)

	_, err = contracts.UpdateHourlyRate(ctx, c.ID, decimal.NewFromInt(40))
	require.NoError(t, err)

	reread, err := invoice.NewInvoicedTasks(store, active.ID).GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.True(t, decimal.NewFromInt(40).Equal(reread.Value), "got %s", reread.Value)
}

func TestStore_ActiveInvoiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithClock(tickingClock()))

	c, err := contract.NewContracts(store).Add(ctx, devID("mihai"), decimal.NewFromInt(20))
	require.NoError(t, err)

	invoices := invoice.NewContractInvoices(store, c.ID)

	first, err := invoices.Active(ctx)
	require.NoError(t, err)

	again, err := invoices.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	second, err := invoices.CreateNewInvoice(ctx)
	require.NoError(t, err)

	_, err = invoices.RegisterAsPaid(ctx, first, invoice.PaidParams{
		TransactionID:  "tx-1",
		PaymentTime:    time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
		Value:          decimal.NewFromInt(100),
		ContributorVat: decimal.RequireFromString("0.19"),
		EurToRon:       decimal.RequireFromString("4.97"),
	})
	require.NoError(t, err)

	active, err := invoices.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	successful, err := invoice.NewPayments(store, first.ID).Successful(ctx)
	require.NoError(t, err)
	require.NotNil(t, successful)
	assert.Equal(t, "tx-1", successful.TransactionID)

	pi, err := invoices.PlatformInvoice(ctx, first)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.97").Equal(pi.EurToRon))

	_, err = store.RegisterAsPaid(ctx, first.ID, invoice.PaidParams{TransactionID: "tx-2"})
	assert.ErrorIs(t, err, invoice.ErrAlreadyPaid)
}

func TestStore_ContractTasksIgnoreSimilarUsernames(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	contracts := contract.NewProjectContracts(store, repo1)
	tasks := task.NewProjectTasks(store, repo1)

	mihai, err := contracts.Add(ctx, devID("mihai"), decimal.NewFromInt(20))
	require.NoError(t, err)

	mihai2, err := contracts.Add(ctx, devID("mihai2"), decimal.NewFromInt(20))
	require.NoError(t, err)

	assignments := map[string]*contract.Contract{"1": mihai, "2": mihai, "3": mihai, "4": mihai2}

	for _, issue := range []string{"1", "2", "3", "4"} {
		registered, err := tasks.Register(ctx, task.Issue{
			ID: issue, RepoFullName: repo1.RepoFullName, Provider: repo1.Provider, Role: contract.RoleDev,
		})
		require.NoError(t, err)

		_, err = tasks.Assign(ctx, registered, assignments[issue], 3)
		require.NoError(t, err)
	}

	ofContract, err := tasks.OfContract(mihai.ID)
	require.NoError(t, err)

	got, err := scope.Collect(ofContract.All(ctx))
	require.NoError(t, err)

	var issues []string
	for _, tk := range got {
		issues = append(issues, tk.ID.IssueID)
	}

	assert.Equal(t, []string{"1", "2", "3"}, issues)
}

func TestStore_RemoveContractWithInvoices(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	contracts := contract.NewContracts(store)

	c, err := contracts.Add(ctx, devID("mihai"), decimal.NewFromInt(20))
	require.NoError(t, err)

	_, err = invoice.NewContractInvoices(store, c.ID).Active(ctx)
	require.NoError(t, err)

	err = contracts.Remove(ctx, c.ID)
	assert.ErrorIs(t, err, scope.ErrConflict)

	_, err = contracts.Add(ctx, c.ID, decimal.NewFromInt(30))
	assert.ErrorIs(t, err, scope.ErrConflict)
}

func TestStore_ResignKeepsAssignment(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	c, err := contract.NewContracts(store).Add(ctx, devID("mihai"), decimal.NewFromInt(20))
	require.NoError(t, err)

	tasks := task.NewProjectTasks(store, repo1)

	registered, err := tasks.Register(ctx, task.Issue{
		ID: "9", RepoFullName: repo1.RepoFullName, Provider: repo1.Provider, Role: contract.RoleDev,
	})
	require.NoError(t, err)

	assigned, err := tasks.Assign(ctx, registered, c, 2)
	require.NoError(t, err)

	_, err = tasks.Assign(ctx, assigned, c, 2)
	assert.ErrorIs(t, err, task.ErrAlreadyAssigned)

	_, err = resignation.NewTaskResignations(store, assigned.ID).Register(ctx, assigned, "moving on")
	require.NoError(t, err)

	_, err = resignation.NewTaskResignations(store, assigned.ID).Register(ctx, assigned, "again")
	assert.ErrorIs(t, err, scope.ErrConflict)

	stored, err := store.GetTask(ctx, assigned.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Assignment)

	n, err := resignation.NewContributorResignations(store, c.Contributor()).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
