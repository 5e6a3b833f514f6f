package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/landxfer/internal/ports/primary"
)

// DeedAdapter translates deed commands to DeedService calls.
type DeedAdapter struct {
	service primary.DeedService
	out     io.Writer
}

// NewDeedAdapter creates a new DeedAdapter with the given service.
func NewDeedAdapter(service primary.DeedService, out io.Writer) *DeedAdapter {
	return &DeedAdapter{
		service: service,
		out:     out,
	}
}

// Draft creates or replaces the deed draft.
func (a *DeedAdapter) Draft(ctx context.Context, req primary.DraftDeedRequest) error {
	d, err := a.service.DraftDeed(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deed drafted for %s (witnesses: %s, %s)\n", d.CaseID, d.Witness1, d.Witness2)
	return nil
}

// Finalize freezes the deed.
func (a *DeedAdapter) Finalize(ctx context.Context, caseID string, actor primary.Actor) error {
	d, err := a.service.FinalizeDeed(ctx, caseID, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deed for %s finalized\n", d.CaseID)
	fmt.Fprintf(a.out, "  sha256: %s\n", d.ContentHash)
	return nil
}

// Show prints the deed.
func (a *DeedAdapter) Show(ctx context.Context, caseID string) error {
	d, err := a.service.GetDeed(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to get deed: %w", err)
	}

	fmt.Fprintf(a.out, "\nDeed:      %s\n", d.CaseID)
	fmt.Fprintf(a.out, "Witnesses: %s, %s\n", d.Witness1, d.Witness2)
	if d.IsFinalized {
		fmt.Fprintf(a.out, "Finalized: %s by %s\n", formatTime(d.FinalizedAt), d.FinalizedBy)
		fmt.Fprintf(a.out, "Hash:      %s\n", d.ContentHash)
	} else {
		fmt.Fprintln(a.out, "Finalized: no")
	}
	if d.Content != "" {
		fmt.Fprintf(a.out, "\n%s\n", d.Content)
	}
	fmt.Fprintln(a.out)

	return nil
}
