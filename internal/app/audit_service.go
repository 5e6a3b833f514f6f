package app

import (
	"context"
	"fmt"
	"io"

	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	store    secondary.Store
	exporter secondary.AuditExporter
}

// NewAuditService creates a new AuditService with injected dependencies.
func NewAuditService(store secondary.Store, exporter secondary.AuditExporter) *AuditServiceImpl {
	return &AuditServiceImpl{store: store, exporter: exporter}
}

func (s *AuditServiceImpl) list(ctx context.Context, caseID string) ([]*secondary.AuditRecord, error) {
	if _, err := s.store.Cases().GetByID(ctx, caseID); err != nil {
		return nil, loadCaseErr(caseID, err)
	}
	records, err := s.store.Audit().ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return records, nil
}

// ListEntries lists a case's audit entries oldest first.
func (s *AuditServiceImpl) ListEntries(ctx context.Context, caseID string) ([]*primary.AuditEntry, error) {
	records, err := s.list(ctx, caseID)
	if err != nil {
		return nil, err
	}

	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = recordToAuditEntry(r)
	}
	return entries, nil
}

// ExportXLSX writes a case's audit trail as a spreadsheet.
func (s *AuditServiceImpl) ExportXLSX(ctx context.Context, caseID string, w io.Writer) error {
	if s.exporter == nil {
		return fmt.Errorf("no audit exporter configured")
	}
	records, err := s.list(ctx, caseID)
	if err != nil {
		return err
	}

	rows := make([]secondary.AuditExportRow, len(records))
	for i, r := range records {
		rows[i] = secondary.AuditExportRow{
			CreatedAt: r.CreatedAt,
			ActorID:   r.ActorID,
			ActorRole: r.ActorRole,
			Action:    r.Action,
			FromStage: stageCode(r.FromStageID),
			ToStage:   stageCode(r.ToStageID),
			Detail:    r.Detail,
			IPAddress: r.IPAddress,
			UserAgent: r.UserAgent,
		}
	}
	return s.exporter.ExportAudit(w, caseID, rows)
}

var _ primary.AuditService = (*AuditServiceImpl)(nil)
