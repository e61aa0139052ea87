package invoice

import (
	"context"
	"fmt"
	"iter"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

// ContractInvoices is a view over the invoices of one contract.
type ContractInvoices struct {
	repo     Repository
	contract contract.ID
	seq      scope.Seq[*Invoice]
}

// NewContractInvoices returns a lazy view that reads the contract's invoices
// from storage on every iteration.
func NewContractInvoices(repo Repository, id contract.ID) *ContractInvoices {
	load := func(ctx context.Context) iter.Seq2[*Invoice, error] {
		return repo.ListInvoices(ctx, id)
	}

	return &ContractInvoices{
		repo:     repo,
		contract: id,
		seq:      scope.Lazy(load).Where(ofContract(id)),
	}
}

// NewContractInvoicesFrom returns a list-backed view over items.
func NewContractInvoicesFrom(repo Repository, id contract.ID, items []*Invoice) *ContractInvoices {
	return &ContractInvoices{
		repo:     repo,
		contract: id,
		seq:      scope.List(items).Where(ofContract(id)),
	}
}

func ofContract(id contract.ID) func(*Invoice) bool {
	return func(inv *Invoice) bool {
		return inv.Contract.Matches(id)
	}
}

func (ci *ContractInvoices) Contract() contract.ID {
	return ci.contract
}

func (ci *ContractInvoices) OfContract(id contract.ID) (*ContractInvoices, error) {
	if err := scope.Check("contract", ci.contract, id); err != nil {
		return nil, err
	}

	return ci, nil
}

// All iterates the contract's invoices. Every call starts a new iteration.
func (ci *ContractInvoices) All(ctx context.Context) iter.Seq2[*Invoice, error] {
	return ci.seq.All(ctx)
}

// GetByID returns the invoice with the given id, or nil if the contract has no
// such invoice.
func (ci *ContractInvoices) GetByID(ctx context.Context, id ID) (*Invoice, error) {
	found, ok, err := scope.Find(ci.seq.All(ctx), func(inv *Invoice) bool {
		return inv.ID == id
	})
	if err != nil {
		return nil, fmt.Errorf("finding invoice: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return found, nil
}

func (ci *ContractInvoices) Count(ctx context.Context) (int, error) {
	n, err := scope.Count(ci.seq.All(ctx))
	if err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return n, nil
}

// CreateNewInvoice opens a new invoice for the contract.
func (ci *ContractInvoices) CreateNewInvoice(ctx context.Context) (*Invoice, error) {
	created, err := ci.repo.CreateInvoice(ctx, ci.contract)
	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	ci.seq.Append(created)

	return created, nil
}

// Active returns the oldest unpaid invoice of the contract, creating one when
// every invoice is paid. Invoices created at the same instant keep the order
// storage returned them in.
//
// Two callers racing on a contract without open invoices may both create one;
// storage has to enforce uniqueness if that matters.
func (ci *ContractInvoices) Active(ctx context.Context) (*Invoice, error) {
	items, err := scope.Collect(ci.seq.All(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	if active := OldestUnpaid(items); active != nil {
		return active, nil
	}

	return ci.CreateNewInvoice(ctx)
}

// OldestUnpaid returns the unpaid invoice created first, or nil if every
// invoice is paid. Ties keep their order in items.
func OldestUnpaid(items []*Invoice) *Invoice {
	var oldest *Invoice

	for _, inv := range items {
		if inv.IsPaid() {
			continue
		}

		if oldest == nil || inv.CreatedAt.Before(oldest.CreatedAt) {
			oldest = inv
		}
	}

	return oldest
}

// RegisterAsPaid settles inv and returns the successful payment recorded for
// it. inv must be one of the contract's stored invoices; the view afterwards
// holds the invoice as storage recorded it.
func (ci *ContractInvoices) RegisterAsPaid(ctx context.Context, inv *Invoice, params PaidParams) (*Payment, error) {
	if err := scope.Check("contract", ci.contract, inv.Contract); err != nil {
		return nil, err
	}

	if inv.IsPaid() {
		return nil, fmt.Errorf("%s: %w", inv.ID, ErrAlreadyPaid)
	}

	if params.Value.IsNegative() {
		return nil, ErrNegativeAmount
	}

	stored, err := ci.stored(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	if stored.IsPaid() {
		return nil, fmt.Errorf("%s: %w", inv.ID, ErrAlreadyPaid)
	}

	payment, err := ci.repo.RegisterAsPaid(ctx, inv.ID, params)
	if err != nil {
		return nil, fmt.Errorf("registering %s as paid: %w", inv.ID, err)
	}

	paid, err := ci.repo.GetInvoice(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading %s: %w", inv.ID, err)
	}

	ci.seq.Replace(func(i *Invoice) bool {
		return i.ID == inv.ID
	}, paid)

	return payment, nil
}

// stored returns the contract's own copy of the invoice with the given id.
func (ci *ContractInvoices) stored(ctx context.Context, id ID) (*Invoice, error) {
	found, err := ci.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, fmt.Errorf("%s: %w", id, scope.ErrNotFound)
	}

	return found, nil
}

// PlatformInvoice returns the commission invoice the platform issued when inv
// was paid.
func (ci *ContractInvoices) PlatformInvoice(ctx context.Context, inv *Invoice) (*PlatformInvoice, error) {
	if err := scope.Check("contract", ci.contract, inv.Contract); err != nil {
		return nil, err
	}

	if _, err := ci.stored(ctx, inv.ID); err != nil {
		return nil, err
	}

	pi, err := ci.repo.GetPlatformInvoice(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("getting platform invoice: %w", err)
	}

	return pi, nil
}
