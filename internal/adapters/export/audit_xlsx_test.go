package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/landxfer/internal/ports/secondary"
)

func TestExportAudit_RoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	rows := []secondary.AuditExportRow{
		{CreatedAt: at, ActorID: "clerk-01", ActorRole: "CLERK", Action: "CASE_CREATED", ToStage: "SUBMITTED", IPAddress: "10.0.0.7"},
		{CreatedAt: at.Add(time.Minute), ActorID: "clerk-01", ActorRole: "CLERK", Action: "STAGE_TRANSITION",
			FromStage: "SUBMITTED", ToStage: "UNDER_SCRUTINY", Detail: `{"guard":"GUARD_INTAKE_COMPLETE"}`},
	}

	var buf bytes.Buffer
	require.NoError(t, NewAuditXLSXExporter().ExportAudit(&buf, "APP-0001", rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Audit APP-0001"}, f.GetSheetList())

	got, err := f.GetRows("Audit APP-0001")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, AuditHeader, got[0])
	assert.Equal(t, "2026-03-01T12:30:00Z", got[1][0])
	assert.Equal(t, "CASE_CREATED", got[1][3])
	assert.Equal(t, "", got[1][4])
	assert.Equal(t, "SUBMITTED", got[1][5])
	assert.Equal(t, "10.0.0.7", got[1][7])
	assert.Equal(t, "UNDER_SCRUTINY", got[2][5])
	assert.Equal(t, `{"guard":"GUARD_INTAKE_COMPLETE"}`, got[2][6])
}

func TestExportAudit_EmptyTrail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewAuditXLSXExporter().ExportAudit(&buf, "APP-0002", nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows(SheetName("APP-0002"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, AuditHeader, got[0])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Audit APP-0001", SheetName("APP-0001"))
	assert.Len(t, SheetName("APP-000000000000000000000000000001"), 31)
}
