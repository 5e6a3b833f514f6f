package secondary

import (
	"io"
	"time"
)

// AuditExportRow is one audit entry with stage ids resolved to codes.
type AuditExportRow struct {
	CreatedAt time.Time
	ActorID   string
	ActorRole string
	Action    string
	FromStage string
	ToStage   string
	Detail    string
	IPAddress string
	UserAgent string
}

// AuditExporter writes a case's audit trail in a document format.
type AuditExporter interface {
	ExportAudit(w io.Writer, caseID string, rows []AuditExportRow) error
}
