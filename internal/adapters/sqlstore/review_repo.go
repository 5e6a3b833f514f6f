package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const reviewColumns = "id, case_id, section, reviewer_id, status, remarks, reviewed_at, created_at, updated_at"

// ReviewRepository implements secondary.ReviewRepository.
type ReviewRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(q Querier, dialect db.Dialect) *ReviewRepository {
	return &ReviewRepository{q: q, dialect: dialect}
}

// Upsert creates the review for (case, section) or replaces the verdict of
// the existing one. The stored ID is written back to rv.
func (r *ReviewRepository) Upsert(ctx context.Context, rv *secondary.ReviewRecord) error {
	rv.ReviewedAt = orNow(rv.ReviewedAt)
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = rv.ReviewedAt
	}
	if rv.UpdatedAt.IsZero() {
		rv.UpdatedAt = rv.ReviewedAt
	}

	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO reviews ("+reviewColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT (case_id, section) DO UPDATE SET reviewer_id = excluded.reviewer_id, status = excluded.status, "+
			"remarks = excluded.remarks, reviewed_at = excluded.reviewed_at, updated_at = excluded.updated_at"),
		rv.ID, rv.CaseID, rv.Section, rv.ReviewerID, rv.Status, nullString(rv.Remarks),
		rv.ReviewedAt, rv.CreatedAt, rv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	stored, err := r.GetBySection(ctx, rv.CaseID, rv.Section)
	if err != nil {
		return err
	}
	rv.ID = stored.ID
	rv.CreatedAt = stored.CreatedAt
	return nil
}

func scanReview(s scanner) (*secondary.ReviewRecord, error) {
	var (
		remarks sql.NullString
		record  secondary.ReviewRecord
	)
	err := s.Scan(&record.ID, &record.CaseID, &record.Section, &record.ReviewerID, &record.Status, &remarks,
		&record.ReviewedAt, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.Remarks = remarks.String
	return &record, nil
}

// GetBySection retrieves a case's review for a section.
func (r *ReviewRepository) GetBySection(ctx context.Context, caseID, section string) (*secondary.ReviewRecord, error) {
	row := r.q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+reviewColumns+" FROM reviews WHERE case_id = ? AND section = ?"), caseID, section)
	record, err := scanReview(row)
	if isNoRows(err) {
		return nil, notFound("review", caseID+"/"+section)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return record, nil
}

// ListByCase retrieves all reviews for a case.
func (r *ReviewRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.ReviewRecord, error) {
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(
		"SELECT "+reviewColumns+" FROM reviews WHERE case_id = ? ORDER BY created_at, section"), caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*secondary.ReviewRecord
	for rows.Next() {
		record, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, record)
	}
	return reviews, rows.Err()
}

var _ secondary.ReviewRepository = (*ReviewRepository)(nil)
