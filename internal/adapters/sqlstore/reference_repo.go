package sqlstore

import (
	"context"
	"fmt"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

// ReferenceDataRepository reads the seeded stages and transitions tables.
type ReferenceDataRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewReferenceDataRepository creates a new reference data repository.
func NewReferenceDataRepository(q Querier, dialect db.Dialect) *ReferenceDataRepository {
	return &ReferenceDataRepository{q: q, dialect: dialect}
}

// ListStages returns the stage rows ordered by sort order.
func (r *ReferenceDataRepository) ListStages(ctx context.Context) ([]*secondary.StageRecord, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT id, code, name, sort_order FROM stages ORDER BY sort_order, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []*secondary.StageRecord
	for rows.Next() {
		var s secondary.StageRecord
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, &s)
	}
	return stages, rows.Err()
}

// ListTransitions returns the transition rows ordered by sort order.
func (r *ReferenceDataRepository) ListTransitions(ctx context.Context) ([]*secondary.TransitionRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, from_stage_id, to_stage_id, guard_name, sort_order FROM transitions ORDER BY sort_order, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	defer rows.Close()

	var transitions []*secondary.TransitionRecord
	for rows.Next() {
		var t secondary.TransitionRecord
		if err := rows.Scan(&t.ID, &t.FromStageID, &t.ToStageID, &t.GuardName, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		transitions = append(transitions, &t)
	}
	return transitions, rows.Err()
}

var _ secondary.ReferenceDataRepository = (*ReferenceDataRepository)(nil)
