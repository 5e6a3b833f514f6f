package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const clearanceColumns = "id, case_id, section, status, remarks, updated_by, cleared_at, created_at, updated_at"

// ClearanceRepository implements secondary.ClearanceRepository.
type ClearanceRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewClearanceRepository creates a new clearance repository.
func NewClearanceRepository(q Querier, dialect db.Dialect) *ClearanceRepository {
	return &ClearanceRepository{q: q, dialect: dialect}
}

// Create persists a new clearance. The (case_id, section) unique constraint
// rejects a second row for the same section.
func (r *ClearanceRepository) Create(ctx context.Context, c *secondary.ClearanceRecord) error {
	c.CreatedAt = orNow(c.CreatedAt)
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO clearances ("+clearanceColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		c.ID, c.CaseID, c.Section, c.Status, nullString(c.Remarks), nullString(c.UpdatedBy),
		nullTime(c.ClearedAt), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clearance: %w", err)
	}
	return nil
}

func scanClearance(s scanner) (*secondary.ClearanceRecord, error) {
	var (
		remarks   sql.NullString
		updatedBy sql.NullString
		clearedAt sql.NullTime
		record    secondary.ClearanceRecord
	)
	err := s.Scan(&record.ID, &record.CaseID, &record.Section, &record.Status, &remarks, &updatedBy,
		&clearedAt, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.Remarks = remarks.String
	record.UpdatedBy = updatedBy.String
	if clearedAt.Valid {
		record.ClearedAt = clearedAt.Time
	}
	return &record, nil
}

// GetBySection retrieves a case's clearance for a section.
func (r *ClearanceRepository) GetBySection(ctx context.Context, caseID, section string) (*secondary.ClearanceRecord, error) {
	row := r.q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+clearanceColumns+" FROM clearances WHERE case_id = ? AND section = ?"), caseID, section)
	record, err := scanClearance(row)
	if isNoRows(err) {
		return nil, notFound("clearance", caseID+"/"+section)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clearance: %w", err)
	}
	return record, nil
}

// ListByCase retrieves all clearances for a case.
func (r *ClearanceRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.ClearanceRecord, error) {
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(
		"SELECT "+clearanceColumns+" FROM clearances WHERE case_id = ? ORDER BY created_at, section"), caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clearances: %w", err)
	}
	defer rows.Close()

	var clearances []*secondary.ClearanceRecord
	for rows.Next() {
		record, err := scanClearance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clearance: %w", err)
		}
		clearances = append(clearances, record)
	}
	return clearances, rows.Err()
}

// Update updates status, remarks and cleared timestamp of a clearance.
func (r *ClearanceRepository) Update(ctx context.Context, c *secondary.ClearanceRecord) error {
	c.UpdatedAt = orNow(c.UpdatedAt)
	result, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE clearances SET status = ?, remarks = ?, updated_by = ?, cleared_at = ?, updated_at = ? WHERE id = ?"),
		c.Status, nullString(c.Remarks), nullString(c.UpdatedBy), nullTime(c.ClearedAt), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clearance: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("clearance", c.ID)
	}
	return nil
}

var _ secondary.ClearanceRepository = (*ClearanceRepository)(nil)
