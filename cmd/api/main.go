package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/paidwork/internal/config"
	paidHttp "github.com/MrJamesThe3rd/paidwork/internal/http"
	contractHandler "github.com/MrJamesThe3rd/paidwork/internal/http/contract"
	invoiceHandler "github.com/MrJamesThe3rd/paidwork/internal/http/invoice"
	taskHandler "github.com/MrJamesThe3rd/paidwork/internal/http/task"
	"github.com/MrJamesThe3rd/paidwork/internal/importer"
	"github.com/MrJamesThe3rd/paidwork/internal/logging"
	"github.com/MrJamesThe3rd/paidwork/internal/storage"
	"github.com/MrJamesThe3rd/paidwork/internal/wallet"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	var (
		importService = importer.NewService()
		fakeWallet    = wallet.NewFake(repos.Invoices, cfg.Wallet.CashLimit)
	)

	var (
		contractH = contractHandler.NewHandler(repos.Contracts)
		taskH     = taskHandler.NewHandler(repos.Tasks, repos.Contracts, repos.Resignations, importService)
		invoiceH  = invoiceHandler.NewHandler(repos.Invoices, repos.Tasks, repos.Contracts, fakeWallet)
	)

	router := paidHttp.New(paidHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
	}, contractH, taskH, invoiceH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "storage", cfg.Storage.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
