package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const caseColumns = "id, current_stage_id, previous_stage_id, status, applicant_name, seller_ref, buyer_ref, plot_ref, owner_ref, created_at, updated_at"

// CaseRepository implements secondary.CaseRepository.
type CaseRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewCaseRepository creates a new case repository.
func NewCaseRepository(q Querier, dialect db.Dialect) *CaseRepository {
	return &CaseRepository{q: q, dialect: dialect}
}

// Create persists a new case.
func (r *CaseRepository) Create(ctx context.Context, c *secondary.CaseRecord) error {
	createdAt := orNow(c.CreatedAt)
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO cases ("+caseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		c.ID, c.CurrentStageID, nullInt(c.PreviousStageID), c.Status, c.ApplicantName,
		c.SellerRef, c.BuyerRef, c.PlotRef, c.OwnerRef, createdAt, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}

	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return nil
}

func scanCase(s scanner) (*secondary.CaseRecord, error) {
	var (
		previous sql.NullInt64
		record   secondary.CaseRecord
	)
	err := s.Scan(&record.ID, &record.CurrentStageID, &previous, &record.Status, &record.ApplicantName,
		&record.SellerRef, &record.BuyerRef, &record.PlotRef, &record.OwnerRef, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if previous.Valid {
		record.PreviousStageID = int(previous.Int64)
	}
	return &record, nil
}

// GetByID retrieves a case by its ID.
func (r *CaseRepository) GetByID(ctx context.Context, id string) (*secondary.CaseRecord, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate retrieves a case, taking a row lock on PostgreSQL.
func (r *CaseRepository) GetForUpdate(ctx context.Context, id string) (*secondary.CaseRecord, error) {
	return r.get(ctx, id, r.dialect.ForUpdate())
}

func (r *CaseRepository) get(ctx context.Context, id, suffix string) (*secondary.CaseRecord, error) {
	row := r.q.QueryRowContext(ctx, r.dialect.Rebind("SELECT "+caseColumns+" FROM cases WHERE id = ?"+suffix), id)
	record, err := scanCase(row)
	if isNoRows(err) {
		return nil, notFound("case", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return record, nil
}

// List retrieves cases matching the given filters.
func (r *CaseRepository) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	query := "SELECT " + caseColumns + " FROM cases WHERE 1=1"
	args := []any{}

	if filters.StageID != 0 {
		query += " AND current_stage_id = ?"
		args = append(args, filters.StageID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []*secondary.CaseRecord
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, record)
	}

	return cases, rows.Err()
}

// UpdateStage moves the stage pointers with a compare-and-set on the current stage.
func (r *CaseRepository) UpdateStage(ctx context.Context, id string, fromStageID, toStageID int, at time.Time) (bool, error) {
	result, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE cases SET previous_stage_id = current_stage_id, current_stage_id = ?, updated_at = ? WHERE id = ? AND current_stage_id = ?"),
		toStageID, orNow(at), id, fromStageID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update case stage: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update case stage: %w", err)
	}
	return rowsAffected == 1, nil
}

// UpdateStatus sets the free-form status flag.
func (r *CaseRepository) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	return r.exec(ctx, id, "UPDATE cases SET status = ?, updated_at = ? WHERE id = ?", status, orNow(at), id)
}

// UpdateOwner records the current owner of the plot.
func (r *CaseRepository) UpdateOwner(ctx context.Context, id, ownerRef string, at time.Time) error {
	return r.exec(ctx, id, "UPDATE cases SET owner_ref = ?, updated_at = ? WHERE id = ?", ownerRef, orNow(at), id)
}

func (r *CaseRepository) exec(ctx context.Context, id, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("case", id)
	}

	return nil
}

// GetNextID returns the next available case ID.
func (r *CaseRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.q.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM cases",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next case ID: %w", err)
	}

	return workflow.GenerateCaseID(maxID), nil
}

var _ secondary.CaseRepository = (*CaseRepository)(nil)
