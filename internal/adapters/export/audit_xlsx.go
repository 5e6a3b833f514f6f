// Package export writes case records to document formats for offline review.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/landxfer/internal/ports/secondary"
)

// AuditHeader is the first row of an exported audit sheet.
var AuditHeader = []string{
	"Timestamp",
	"Actor",
	"Role",
	"Action",
	"From Stage",
	"To Stage",
	"Detail",
	"IP Address",
	"User Agent",
}

var auditColumnWidths = []float64{22, 16, 12, 28, 22, 22, 60, 16, 30}

// AuditXLSXExporter renders an audit trail as a single-sheet workbook.
type AuditXLSXExporter struct{}

// NewAuditXLSXExporter creates a new AuditXLSXExporter.
func NewAuditXLSXExporter() *AuditXLSXExporter {
	return &AuditXLSXExporter{}
}

// SheetName returns the worksheet name used for a case. Excel caps names at
// 31 characters.
func SheetName(caseID string) string {
	name := "Audit " + caseID
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// ExportAudit writes one header row and one row per entry.
func (x *AuditXLSXExporter) ExportAudit(w io.Writer, caseID string, rows []secondary.AuditExportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := SheetName(caseID)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(AuditHeader))
	for i, h := range AuditHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(AuditHeader), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range auditColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		values := []any{
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.ActorID,
			r.ActorRole,
			r.Action,
			r.FromStage,
			r.ToStage,
			r.Detail,
			r.IPAddress,
			r.UserAgent,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

var _ secondary.AuditExporter = (*AuditXLSXExporter)(nil)
