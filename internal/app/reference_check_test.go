package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyReferenceData_SeededMatchesCatalog(t *testing.T) {
	e := newTestEngine(t)

	drift, err := VerifyReferenceData(context.Background(), e.raw.ReferenceData())
	require.NoError(t, err)
	assert.Empty(t, drift)
}

func TestVerifyReferenceData_ReportsDrift(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.db.ExecContext(ctx, "UPDATE transitions SET guard_name = 'GUARD_SOMETHING_ELSE' WHERE id = 1")
	require.NoError(t, err)
	_, err = e.db.ExecContext(ctx, "INSERT INTO transitions (id, from_stage_id, to_stage_id, guard_name, sort_order) VALUES (999, 20, 1, 'GUARD_REOPEN', 999)")
	require.NoError(t, err)

	drift, err := VerifyReferenceData(ctx, e.raw.ReferenceData())
	require.NoError(t, err)
	require.Len(t, drift, 2)
	assert.Contains(t, drift, "edge SUBMITTED -> UNDER_SCRUTINY seeded with GUARD_SOMETHING_ELSE, expected GUARD_INTAKE_COMPLETE")
	assert.Contains(t, drift, "transition 20 -> 1 (GUARD_REOPEN) is not in the edge table")
}
