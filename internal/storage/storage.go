// Package storage opens the repositories selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/paidwork/internal/config"
	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	contractStore "github.com/MrJamesThe3rd/paidwork/internal/contract/store"
	"github.com/MrJamesThe3rd/paidwork/internal/database"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/paidwork/internal/invoice/store"
	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	resignationStore "github.com/MrJamesThe3rd/paidwork/internal/resignation/store"
	"github.com/MrJamesThe3rd/paidwork/internal/storage/memory"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
	taskStore "github.com/MrJamesThe3rd/paidwork/internal/task/store"
)

type Repositories struct {
	Contracts    contract.Repository
	Tasks        task.Repository
	Invoices     invoice.Repository
	Resignations resignation.Repository

	close func() error
}

func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}

	return r.close()
}

// Open connects to the configured driver. PostgreSQL is migrated before use.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory storage, data is lost on exit")

		store := memory.New()

		return &Repositories{
			Contracts:    store,
			Tasks:        store,
			Invoices:     store,
			Resignations: store,
		}, nil
	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}

		return &Repositories{
			Contracts:    contractStore.New(db),
			Tasks:        taskStore.New(db),
			Invoices:     invoiceStore.New(db),
			Resignations: resignationStore.New(db),
			close:        db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
