// Package sqlstore contains database/sql implementations of the repository
// interfaces. The same repositories run on SQLite and PostgreSQL; queries are
// written with ? placeholders and rebound per dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// repositories binds every repository to one Querier.
type repositories struct {
	cases      *CaseRepository
	documents  *DocumentRepository
	clearances *ClearanceRepository
	reviews    *ReviewRepository
	accounts   *AccountsRepository
	deeds      *DeedRepository
	audit      *AuditRepository
}

func newRepositories(q Querier, dialect db.Dialect) *repositories {
	return &repositories{
		cases:      NewCaseRepository(q, dialect),
		documents:  NewDocumentRepository(q, dialect),
		clearances: NewClearanceRepository(q, dialect),
		reviews:    NewReviewRepository(q, dialect),
		accounts:   NewAccountsRepository(q, dialect),
		deeds:      NewDeedRepository(q, dialect),
		audit:      NewAuditRepository(q, dialect),
	}
}

func (r *repositories) Cases() secondary.CaseRepository           { return r.cases }
func (r *repositories) Documents() secondary.DocumentRepository   { return r.documents }
func (r *repositories) Clearances() secondary.ClearanceRepository { return r.clearances }
func (r *repositories) Reviews() secondary.ReviewRepository       { return r.reviews }
func (r *repositories) Accounts() secondary.AccountsRepository    { return r.accounts }
func (r *repositories) Deeds() secondary.DeedRepository           { return r.deeds }
func (r *repositories) Audit() secondary.AuditRepository          { return r.audit }

// Store implements secondary.Store over one shared connection pool.
type Store struct {
	*repositories
	db        *sql.DB
	dialect   db.Dialect
	reference *ReferenceDataRepository
}

// NewStore creates a Store. The pool is shared by every repository and
// every transaction the Store opens.
func NewStore(database *sql.DB, dialect db.Dialect) *Store {
	return &Store{
		repositories: newRepositories(database, dialect),
		db:           database,
		dialect:      dialect,
		reference:    NewReferenceDataRepository(database, dialect),
	}
}

// ReferenceData returns the stage/transition reader.
func (s *Store) ReferenceData() secondary.ReferenceDataRepository {
	return s.reference
}

// WithTx runs fn with repositories bound to a new transaction. The
// transaction commits if fn returns nil and rolls back on error or panic.
// A cancelled ctx rolls the transaction back.
func (s *Store) WithTx(ctx context.Context, fn func(tx secondary.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(newRepositories(tx, s.dialect)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// notFound wraps secondary.ErrNotFound as "<entity> <id> not found".
func notFound(entity, id string) error {
	return fmt.Errorf("%s %s %w", entity, id, secondary.ErrNotFound)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullInt(i int) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(i), Valid: true}
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

var (
	_ secondary.Store        = (*Store)(nil)
	_ secondary.Repositories = (*repositories)(nil)
)
