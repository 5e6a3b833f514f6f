// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/landxfer/internal/ports/primary"
)

const rule = "────────────────────────────────────────────────────────────────"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// CaseAdapter is a thin adapter that translates CLI operations to CaseService calls.
type CaseAdapter struct {
	service primary.CaseService
	out     io.Writer
}

// NewCaseAdapter creates a new CaseAdapter with the given service.
func NewCaseAdapter(service primary.CaseService, out io.Writer) *CaseAdapter {
	return &CaseAdapter{
		service: service,
		out:     out,
	}
}

// Create opens a new case.
func (a *CaseAdapter) Create(ctx context.Context, req primary.CreateCaseRequest) error {
	c, err := a.service.CreateCase(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created case %s at %s\n", c.ID, c.Stage)
	return nil
}

// Show displays details for a single case.
func (a *CaseAdapter) Show(ctx context.Context, caseID string) (*primary.Case, error) {
	c, err := a.service.GetCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	fmt.Fprintf(a.out, "\nCase:      %s\n", c.ID)
	fmt.Fprintf(a.out, "Applicant: %s\n", c.ApplicantName)
	fmt.Fprintf(a.out, "Stage:     %s (%s)\n", c.Stage, c.StageName)
	if c.PreviousStage != "" {
		fmt.Fprintf(a.out, "Previous:  %s\n", c.PreviousStage)
	}
	fmt.Fprintf(a.out, "Status:    %s\n", c.Status)
	fmt.Fprintf(a.out, "Plot:      %s (owner %s)\n", c.PlotRef, c.OwnerRef)
	fmt.Fprintf(a.out, "Seller:    %s\n", c.SellerRef)
	fmt.Fprintf(a.out, "Buyer:     %s\n", c.BuyerRef)
	fmt.Fprintf(a.out, "Updated:   %s\n", formatTime(c.UpdatedAt))
	fmt.Fprintln(a.out)

	return c, nil
}

// List lists cases with optional stage and status filters.
func (a *CaseAdapter) List(ctx context.Context, filters primary.CaseFilters) error {
	cases, err := a.service.ListCases(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	if len(cases) == 0 {
		fmt.Fprintln(a.out, "No cases found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-22s %-10s %s\n", "ID", "STAGE", "STATUS", "APPLICANT")
	fmt.Fprintln(a.out, rule)
	for _, c := range cases {
		fmt.Fprintf(a.out, "%-12s %-22s %-10s %s\n", c.ID, c.Stage, c.Status, c.ApplicantName)
	}
	fmt.Fprintln(a.out)

	return nil
}

// AddDocument records a submitted document.
func (a *CaseAdapter) AddDocument(ctx context.Context, caseID, docType string, actor primary.Actor) error {
	d, err := a.service.RecordDocument(ctx, caseID, docType, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Recorded %s for case %s\n", d.DocType, caseID)
	return nil
}

// MarkSeen flags a document's original as inspected.
func (a *CaseAdapter) MarkSeen(ctx context.Context, caseID, docType string, actor primary.Actor) error {
	d, err := a.service.MarkOriginalSeen(ctx, caseID, docType, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Original %s seen for case %s\n", d.DocType, caseID)
	return nil
}

// Documents lists the documents recorded for a case.
func (a *CaseAdapter) Documents(ctx context.Context, caseID string) error {
	docs, err := a.service.ListDocuments(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Fprintf(a.out, "No documents recorded for %s\n", caseID)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-15s %-8s %-12s %s\n", "DOC", "SEEN", "SEEN BY", "SEEN AT")
	fmt.Fprintln(a.out, rule)
	for _, d := range docs {
		seen := "no"
		if d.OriginalSeen {
			seen = "yes"
		}
		fmt.Fprintf(a.out, "%-15s %-8s %-12s %s\n", d.DocType, seen, orDash(d.SeenBy), formatTime(d.SeenAt))
	}
	fmt.Fprintln(a.out)

	return nil
}

// TransferOwnership switches the plot owner to the buyer.
func (a *CaseAdapter) TransferOwnership(ctx context.Context, caseID string, actor primary.Actor) error {
	c, err := a.service.TransferOwnership(ctx, caseID, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Plot %s now owned by %s\n", c.PlotRef, c.OwnerRef)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
