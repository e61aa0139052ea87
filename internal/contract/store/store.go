package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/database"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Expected column order: repo_full_name, contributor_username, provider, role, hourly_rate, marked_for_removal
func scanContract(s database.Scanner) (*contract.Contract, error) {
	var c contract.Contract

	var marked sql.NullTime

	if err := s.Scan(
		&c.ID.RepoFullName, &c.ID.ContributorUsername, &c.ID.Provider, &c.ID.Role,
		&c.HourlyRate, &marked,
	); err != nil {
		return nil, err
	}

	if marked.Valid {
		c.MarkedForRemoval = &marked.Time
	}

	return &c, nil
}

const selectContractColumns = `repo_full_name, contributor_username, provider, role, hourly_rate, marked_for_removal`

// whereID matches repo, provider and role case-insensitively and the
// username exactly.
const whereID = `lower(repo_full_name) = lower($1) AND contributor_username = $2
	AND lower(provider) = lower($3) AND lower(role) = lower($4)`

func idArgs(id contract.ID) []any {
	return []any{id.RepoFullName, id.ContributorUsername, id.Provider, id.Role}
}

func (s *Store) AddContract(ctx context.Context, id contract.ID, hourlyRate decimal.Decimal) (*contract.Contract, error) {
	query := `
		INSERT INTO contracts (repo_full_name, contributor_username, provider, role, hourly_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + selectContractColumns

	c, err := scanContract(s.db.QueryRowContext(ctx, query, append(idArgs(id), hourlyRate)...))
	if err != nil {
		if database.IsConflict(err) {
			return nil, fmt.Errorf("contract %s: %w", id, scope.ErrConflict)
		}

		return nil, fmt.Errorf("adding contract: %w", err)
	}

	return c, nil
}

func (s *Store) GetContract(ctx context.Context, id contract.ID) (*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + ` FROM contracts WHERE ` + whereID

	c, err := scanContract(s.db.QueryRowContext(ctx, query, idArgs(id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) ListContracts(ctx context.Context, filter contract.Filter) iter.Seq2[*contract.Contract, error] {
	query := `SELECT ` + selectContractColumns + ` FROM contracts WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Project != nil {
		query += fmt.Sprintf(" AND lower(repo_full_name) = lower($%d) AND lower(provider) = lower($%d)", argIdx, argIdx+1)

		args = append(args, filter.Project.RepoFullName, filter.Project.Provider)
		argIdx += 2
	}

	if filter.Contributor != nil {
		query += fmt.Sprintf(" AND contributor_username = $%d AND lower(provider) = lower($%d)", argIdx, argIdx+1)

		args = append(args, filter.Contributor.Username, filter.Contributor.Provider)
	}

	query += " ORDER BY repo_full_name, contributor_username, role"

	return database.Rows(ctx, s.db, scanContract, query, args...)
}

func (s *Store) UpdateHourlyRate(ctx context.Context, id contract.ID, hourlyRate decimal.Decimal) (*contract.Contract, error) {
	query := `UPDATE contracts SET hourly_rate = $5 WHERE ` + whereID + ` RETURNING ` + selectContractColumns

	c, err := scanContract(s.db.QueryRowContext(ctx, query, append(idArgs(id), hourlyRate)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("updating hourly rate: %w", err)
	}

	return c, nil
}

func (s *Store) MarkForRemoval(ctx context.Context, id contract.ID, at time.Time) (*contract.Contract, error) {
	query := `UPDATE contracts SET marked_for_removal = $5 WHERE ` + whereID + ` RETURNING ` + selectContractColumns

	c, err := scanContract(s.db.QueryRowContext(ctx, query, append(idArgs(id), at)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
		}

		return nil, fmt.Errorf("marking contract for removal: %w", err)
	}

	return c, nil
}

// RemoveContract deletes the contract. Contracts with invoices are protected by
// the invoices foreign key.
func (s *Store) RemoveContract(ctx context.Context, id contract.ID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contracts WHERE `+whereID, idArgs(id)...)
	if err != nil {
		if database.IsConflict(err) {
			return fmt.Errorf("contract %s has invoices: %w", id, scope.ErrConflict)
		}

		return fmt.Errorf("removing contract: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing contract: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	return nil
}
