package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/example/landxfer/internal/ports/primary"
)

// AuditAdapter translates audit commands to AuditService calls.
type AuditAdapter struct {
	service primary.AuditService
	out     io.Writer
}

// NewAuditAdapter creates a new AuditAdapter with the given service.
func NewAuditAdapter(service primary.AuditService, out io.Writer) *AuditAdapter {
	return &AuditAdapter{
		service: service,
		out:     out,
	}
}

// List prints a case's audit trail.
func (a *AuditAdapter) List(ctx context.Context, caseID string) error {
	entries, err := a.service.ListEntries(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to list audit entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No audit entries for %s\n", caseID)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-16s %-12s %-28s %s\n", "WHEN", "ACTOR", "ACTION", "STAGES")
	fmt.Fprintln(a.out, rule)
	for _, e := range entries {
		stages := ""
		if e.FromStage != "" || e.ToStage != "" {
			stages = fmt.Sprintf("%s → %s", orDash(e.FromStage), orDash(e.ToStage))
		}
		fmt.Fprintf(a.out, "%-16s %-12s %-28s %s\n", formatTime(e.CreatedAt), e.ActorID, e.Action, stages)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Export writes the trail to an .xlsx file at path.
func (a *AuditAdapter) Export(ctx context.Context, caseID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := a.service.ExportXLSX(ctx, caseID, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "✓ Audit trail for %s exported to %s\n", caseID, path)
	return nil
}
