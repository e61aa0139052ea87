package invoice

import (
	"context"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// InvoicedTasks is a view over the tasks billed on one invoice.
type InvoicedTasks struct {
	repo    Repository
	invoice ID
	seq     scope.Seq[*InvoicedTask]
}

func NewInvoicedTasks(repo Repository, id ID) *InvoicedTasks {
	load := func(ctx context.Context) iter.Seq2[*InvoicedTask, error] {
		return repo.ListInvoicedTasks(ctx, id)
	}

	return &InvoicedTasks{
		repo:    repo,
		invoice: id,
		seq:     scope.Lazy(load).Where(onInvoice(id)),
	}
}

// NewInvoicedTasksFrom returns a list-backed view over items.
func NewInvoicedTasksFrom(repo Repository, id ID, items []*InvoicedTask) *InvoicedTasks {
	return &InvoicedTasks{
		repo:    repo,
		invoice: id,
		seq:     scope.List(items).Where(onInvoice(id)),
	}
}

func onInvoice(id ID) func(*InvoicedTask) bool {
	return func(it *InvoicedTask) bool {
		return it.Invoice == id
	}
}

func (its *InvoicedTasks) OfInvoice(id ID) (*InvoicedTasks, error) {
	if err := scope.Check("invoice", its.invoice, id); err != nil {
		return nil, err
	}

	return its, nil
}

func (its *InvoicedTasks) All(ctx context.Context) iter.Seq2[*InvoicedTask, error] {
	return its.seq.All(ctx)
}

// GetByID returns the invoiced task with the given id, or nil when the invoice
// has no such entry.
func (its *InvoicedTasks) GetByID(ctx context.Context, id int) (*InvoicedTask, error) {
	found, ok, err := scope.Find(its.seq.All(ctx), func(it *InvoicedTask) bool {
		return it.ID == id
	})
	if err != nil {
		return nil, fmt.Errorf("finding invoiced task: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return found, nil
}

// Register bills a finished task on inv. The value and commissions are stored
// as given and stay fixed even if the contract's rate changes later.
func (its *InvoicedTasks) Register(
	ctx context.Context,
	inv *Invoice,
	finished FinishedTask,
	projectCommission, contributorCommission decimal.Decimal,
) (*InvoicedTask, error) {
	if err := scope.Check("invoice", its.invoice, inv.ID); err != nil {
		return nil, err
	}

	if inv.IsPaid() {
		return nil, fmt.Errorf("%s: %w", inv.ID, ErrAlreadyPaid)
	}

	worked, ok := finished.Task.ContractID()
	if !ok {
		return nil, fmt.Errorf("task %s: %w", finished.Task.ID, task.ErrUnassigned)
	}

	if err := scope.Check("contract", inv.Contract, worked); err != nil {
		return nil, err
	}

	for _, amount := range []decimal.Decimal{finished.Value, projectCommission, contributorCommission} {
		if amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
	}

	registered, err := its.repo.RegisterInvoicedTask(ctx, InvoicedTask{
		Invoice:               inv.ID,
		Task:                  finished.Task.ID,
		Value:                 finished.Value,
		ProjectCommission:     projectCommission,
		ContributorCommission: contributorCommission,
	})
	if err != nil {
		return nil, fmt.Errorf("registering invoiced task: %w", err)
	}

	its.seq.Append(registered)

	return registered, nil
}
