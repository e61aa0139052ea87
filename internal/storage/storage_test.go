package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paidwork/internal/config"
	"github.com/MrJamesThe3rd/paidwork/internal/storage"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.DriverMemory

	repos, err := storage.Open(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotNil(t, repos.Contracts)
	assert.NotNil(t, repos.Tasks)
	assert.NotNil(t, repos.Invoices)
	assert.NotNil(t, repos.Resignations)
	assert.NoError(t, repos.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = "sqlite"

	_, err := storage.Open(context.Background(), cfg)
	assert.Error(t, err)
}
