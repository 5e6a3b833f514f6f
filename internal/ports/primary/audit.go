package primary

import (
	"context"
	"io"
	"time"
)

// AuditService defines the primary port for reading the audit trail.
type AuditService interface {
	// ListEntries lists a case's audit entries in chronological order.
	ListEntries(ctx context.Context, caseID string) ([]*AuditEntry, error)

	// ExportXLSX writes a case's audit trail as a spreadsheet.
	ExportXLSX(ctx context.Context, caseID string, w io.Writer) error
}

// AuditEntry is the public view of an audit entry.
type AuditEntry struct {
	ID        string
	CaseID    string
	ActorID   string
	ActorRole string
	Action    string
	FromStage string
	ToStage   string
	Detail    string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}
