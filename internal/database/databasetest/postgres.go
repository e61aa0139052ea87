//go:build integration

// Package databasetest starts a throwaway PostgreSQL for store tests.
package databasetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/MrJamesThe3rd/paidwork/internal/database"
)

// NewPostgres starts a PostgreSQL container, applies the migrations and
// returns a connection to it. The container is terminated when the test ends.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("paidwork"),
		tcpostgres.WithUsername("paidwork"),
		tcpostgres.WithPassword("paidwork"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)

	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := database.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}
