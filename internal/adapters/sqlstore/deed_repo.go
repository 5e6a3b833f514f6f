package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const deedColumns = "id, case_id, witness1, witness2, content, photo_url, signature_url, is_finalized, content_hash, " +
	"finalized_by, finalized_at, created_at, updated_at"

// DeedRepository implements secondary.DeedRepository.
type DeedRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewDeedRepository creates a new transfer deed repository.
func NewDeedRepository(q Querier, dialect db.Dialect) *DeedRepository {
	return &DeedRepository{q: q, dialect: dialect}
}

// Create persists a new deed draft.
func (r *DeedRepository) Create(ctx context.Context, d *secondary.DeedRecord) error {
	d.CreatedAt = orNow(d.CreatedAt)
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO transfer_deeds ("+deedColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		d.ID, d.CaseID, nullString(d.Witness1), nullString(d.Witness2), nullString(d.Content),
		nullString(d.PhotoURL), nullString(d.SignatureURL), d.IsFinalized, nullString(d.ContentHash),
		nullString(d.FinalizedBy), nullTime(d.FinalizedAt), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deed: %w", err)
	}
	return nil
}

// GetByCase retrieves the deed for a case.
func (r *DeedRepository) GetByCase(ctx context.Context, caseID string) (*secondary.DeedRecord, error) {
	var (
		witness1     sql.NullString
		witness2     sql.NullString
		content      sql.NullString
		photoURL     sql.NullString
		signatureURL sql.NullString
		contentHash  sql.NullString
		finalizedBy  sql.NullString
		finalizedAt  sql.NullTime
		d            secondary.DeedRecord
	)

	err := r.q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+deedColumns+" FROM transfer_deeds WHERE case_id = ?"), caseID,
	).Scan(&d.ID, &d.CaseID, &witness1, &witness2, &content, &photoURL, &signatureURL,
		&d.IsFinalized, &contentHash, &finalizedBy, &finalizedAt, &d.CreatedAt, &d.UpdatedAt)
	if isNoRows(err) {
		return nil, notFound("deed for case", caseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deed: %w", err)
	}

	d.Witness1 = witness1.String
	d.Witness2 = witness2.String
	d.Content = content.String
	d.PhotoURL = photoURL.String
	d.SignatureURL = signatureURL.String
	d.ContentHash = contentHash.String
	d.FinalizedBy = finalizedBy.String
	if finalizedAt.Valid {
		d.FinalizedAt = finalizedAt.Time
	}

	return &d, nil
}

// Update replaces the deed while the stored row is still a draft. A
// finalized row is never rewritten; the call returns ErrImmutable.
func (r *DeedRepository) Update(ctx context.Context, d *secondary.DeedRecord) error {
	d.UpdatedAt = orNow(d.UpdatedAt)
	result, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE transfer_deeds SET witness1 = ?, witness2 = ?, content = ?, photo_url = ?, signature_url = ?, "+
			"is_finalized = ?, content_hash = ?, finalized_by = ?, finalized_at = ?, updated_at = ? "+
			"WHERE id = ? AND is_finalized = ?"),
		nullString(d.Witness1), nullString(d.Witness2), nullString(d.Content), nullString(d.PhotoURL), nullString(d.SignatureURL),
		d.IsFinalized, nullString(d.ContentHash), nullString(d.FinalizedBy), nullTime(d.FinalizedAt), d.UpdatedAt,
		d.ID, false,
	)
	if err != nil {
		return fmt.Errorf("failed to update deed: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		return nil
	}

	var exists int
	err = r.q.QueryRowContext(ctx, r.dialect.Rebind("SELECT COUNT(*) FROM transfer_deeds WHERE id = ?"), d.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check deed: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("deed %s is finalized: %w", d.ID, secondary.ErrImmutable)
	}
	return notFound("deed", d.ID)
}

var _ secondary.DeedRepository = (*DeedRepository)(nil)
