package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/database"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Expected column order: id, repo_full_name, contributor_username, provider, role, created_at, payment_time, transaction_id
func scanInvoice(s database.Scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var paymentTime sql.NullTime

	var txID sql.NullString

	if err := s.Scan(
		&inv.ID,
		&inv.Contract.RepoFullName, &inv.Contract.ContributorUsername, &inv.Contract.Provider, &inv.Contract.Role,
		&inv.CreatedAt, &paymentTime, &txID,
	); err != nil {
		return nil, err
	}

	if paymentTime.Valid {
		inv.PaymentTime = &paymentTime.Time
	}

	if txID.Valid {
		inv.TransactionID = &txID.String
	}

	return &inv, nil
}

const selectInvoiceColumns = `id, repo_full_name, contributor_username, provider, role, created_at, payment_time, transaction_id`

// Expected column order: id, invoice_id, issue_id, repo_full_name, provider, pull_request, value, project_commission, contributor_commission, invoiced_at
func scanInvoicedTask(s database.Scanner) (*invoice.InvoicedTask, error) {
	var it invoice.InvoicedTask

	if err := s.Scan(
		&it.ID, &it.Invoice,
		&it.Task.IssueID, &it.Task.RepoFullName, &it.Task.Provider, &it.Task.PullRequest,
		&it.Value, &it.ProjectCommission, &it.ContributorCommission, &it.InvoicedAt,
	); err != nil {
		return nil, err
	}

	return &it, nil
}

const selectInvoicedTaskColumns = `id, invoice_id, issue_id, repo_full_name, provider, pull_request,
	value, project_commission, contributor_commission, invoiced_at`

// Expected column order: invoice_id, transaction_id, payment_time, value, status, fail_reason
func scanPayment(s database.Scanner) (*invoice.Payment, error) {
	var p invoice.Payment

	var status string

	var reason sql.NullString

	if err := s.Scan(&p.Invoice, &p.TransactionID, &p.PaymentTime, &p.Value, &status, &reason); err != nil {
		return nil, err
	}

	p.Status = invoice.Status(status)

	if reason.Valid {
		p.FailReason = &reason.String
	}

	return &p, nil
}

const selectPaymentColumns = `invoice_id, transaction_id, payment_time, value, status, fail_reason`

const selectPlatformInvoiceColumns = `id, invoice_id, created_at, commission, vat, eur_to_ron, transaction_id, payment_time`

func scanPlatformInvoice(s database.Scanner) (*invoice.PlatformInvoice, error) {
	var pi invoice.PlatformInvoice

	if err := s.Scan(
		&pi.ID, &pi.Invoice, &pi.CreatedAt, &pi.Commission, &pi.Vat, &pi.EurToRon, &pi.TransactionID, &pi.PaymentTime,
	); err != nil {
		return nil, err
	}

	return &pi, nil
}

func (s *Store) CreateInvoice(ctx context.Context, c contract.ID) (*invoice.Invoice, error) {
	query := `
		INSERT INTO invoices (repo_full_name, contributor_username, provider, role, created_at)
		SELECT repo_full_name, contributor_username, provider, role, NOW()
		FROM contracts
		WHERE lower(repo_full_name) = lower($1) AND contributor_username = $2
			AND lower(provider) = lower($3) AND lower(role) = lower($4)
		RETURNING ` + selectInvoiceColumns

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, c.RepoFullName, c.ContributorUsername, c.Provider, c.Role))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contract %s: %w", c, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) GetInvoice(ctx context.Context, id invoice.ID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

// ListInvoices streams the contract's invoices in creation order.
func (s *Store) ListInvoices(ctx context.Context, c contract.ID) iter.Seq2[*invoice.Invoice, error] {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices
		WHERE lower(repo_full_name) = lower($1) AND contributor_username = $2
			AND lower(provider) = lower($3) AND lower(role) = lower($4)
		ORDER BY created_at, id`

	return database.Rows(ctx, s.db, scanInvoice, query, c.RepoFullName, c.ContributorUsername, c.Provider, c.Role)
}

// RegisterAsPaid marks the invoice paid, records the successful payment and
// issues the platform invoice in one transaction. The platform commission is
// the sum of the invoiced commissions and VAT is charged on it at
// ContributorVat.
func (s *Store) RegisterAsPaid(ctx context.Context, id invoice.ID, params invoice.PaidParams) (*invoice.Payment, error) {
	var payment *invoice.Payment

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE invoices SET payment_time = $2, transaction_id = $3
			WHERE id = $1 AND transaction_id IS NULL`,
			id, params.PaymentTime, params.TransactionID,
		)
		if err != nil {
			return fmt.Errorf("marking invoice paid: %w", err)
		}

		if n, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("marking invoice paid: %w", err)
		} else if n == 0 {
			return s.explainUnpaid(ctx, tx, id)
		}

		payment, err = scanPayment(tx.QueryRowContext(ctx, `
			INSERT INTO payments (invoice_id, transaction_id, payment_time, value, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+selectPaymentColumns,
			id, params.TransactionID, params.PaymentTime, params.Value, string(invoice.StatusSuccessful),
		))
		if err != nil {
			return fmt.Errorf("inserting payment: %w", err)
		}

		var commission decimal.Decimal

		if err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(project_commission + contributor_commission), 0)
			FROM invoiced_tasks WHERE invoice_id = $1`, id,
		).Scan(&commission); err != nil {
			return fmt.Errorf("summing commissions: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO platform_invoices (invoice_id, commission, vat, eur_to_ron, transaction_id, payment_time)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, commission, commission.Mul(params.ContributorVat).Round(2), params.EurToRon,
			params.TransactionID, params.PaymentTime,
		); err != nil {
			return fmt.Errorf("inserting platform invoice: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *Store) explainUnpaid(ctx context.Context, tx *sql.Tx, id invoice.ID) error {
	var paid bool

	err := tx.QueryRowContext(ctx, `SELECT transaction_id IS NOT NULL FROM invoices WHERE id = $1`, id).Scan(&paid)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", id, scope.ErrNotFound)
	}

	if err != nil {
		return fmt.Errorf("getting invoice: %w", err)
	}

	return fmt.Errorf("%s: %w", id, invoice.ErrAlreadyPaid)
}

func (s *Store) GetPlatformInvoice(ctx context.Context, id invoice.ID) (*invoice.PlatformInvoice, error) {
	query := `SELECT ` + selectPlatformInvoiceColumns + ` FROM platform_invoices WHERE invoice_id = $1`

	pi, err := scanPlatformInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("platform invoice for %s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("getting platform invoice: %w", err)
	}

	return pi, nil
}

func (s *Store) RegisterInvoicedTask(ctx context.Context, entry invoice.InvoicedTask) (*invoice.InvoicedTask, error) {
	query := `
		INSERT INTO invoiced_tasks (invoice_id, issue_id, repo_full_name, provider, pull_request,
			value, project_commission, contributor_commission, invoiced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + selectInvoicedTaskColumns

	it, err := scanInvoicedTask(s.db.QueryRowContext(ctx, query,
		entry.Invoice,
		entry.Task.IssueID,
		entry.Task.RepoFullName,
		entry.Task.Provider,
		entry.Task.PullRequest,
		entry.Value,
		entry.ProjectCommission,
		entry.ContributorCommission,
	))
	if err != nil {
		if database.IsConflict(err) {
			return nil, fmt.Errorf("task %s on %s: %w", entry.Task, entry.Invoice, scope.ErrConflict)
		}

		return nil, fmt.Errorf("registering invoiced task: %w", err)
	}

	return it, nil
}

func (s *Store) ListInvoicedTasks(ctx context.Context, id invoice.ID) iter.Seq2[*invoice.InvoicedTask, error] {
	query := `SELECT ` + selectInvoicedTaskColumns + ` FROM invoiced_tasks WHERE invoice_id = $1 ORDER BY id`

	return database.Rows(ctx, s.db, scanInvoicedTask, query, id)
}

func (s *Store) RegisterPayment(ctx context.Context, p invoice.Payment) (*invoice.Payment, error) {
	query := `
		INSERT INTO payments (invoice_id, transaction_id, payment_time, value, status, fail_reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + selectPaymentColumns

	registered, err := scanPayment(s.db.QueryRowContext(ctx, query,
		p.Invoice, p.TransactionID, p.PaymentTime, p.Value, string(p.Status), p.FailReason,
	))
	if err != nil {
		if database.IsConflict(err) {
			return nil, fmt.Errorf("payment %s on %s: %w", p.TransactionID, p.Invoice, scope.ErrConflict)
		}

		return nil, fmt.Errorf("registering payment: %w", err)
	}

	return registered, nil
}

func (s *Store) ListPayments(ctx context.Context, id invoice.ID) iter.Seq2[*invoice.Payment, error] {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY payment_time`

	return database.Rows(ctx, s.db, scanPayment, query, id)
}
