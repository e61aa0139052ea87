package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/paidwork/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "paidwork", cfg.App.Name)
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.True(t, decimal.NewFromInt(10000).Equal(cfg.Wallet.CashLimit))
	assert.Equal(t, "postgres://postgres:@localhost:5432/paidwork?sslmode=disable", cfg.ConnectionString())
}

func TestLoad(t *testing.T) {
	type testCase struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}

	tests := []testCase{
		{
			name: "Memory",
			env:  map[string]string{"STORAGE_DRIVER": "memory", "WALLET_CASH_LIMIT": "250.50"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
				assert.Equal(t, "250.5", cfg.Wallet.CashLimit.String())
			},
		},
		{
			name: "CORSOrigins",
			env:  map[string]string{"CORS_ORIGINS": "https://a.example,https://b.example"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
			},
		},
		{
			name:    "UnknownDriver",
			env:     map[string]string{"STORAGE_DRIVER": "sqlite"},
			wantErr: true,
		},
		{
			name:    "NegativeCashLimit",
			env:     map[string]string{"WALLET_CASH_LIMIT": "-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
