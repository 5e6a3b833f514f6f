package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/landxfer/internal/ports/primary"
)

// ClearanceAdapter translates clearance and review commands to their services.
type ClearanceAdapter struct {
	clearances primary.ClearanceService
	reviews    primary.ReviewService
	out        io.Writer
}

// NewClearanceAdapter creates a new ClearanceAdapter.
func NewClearanceAdapter(clearances primary.ClearanceService, reviews primary.ReviewService, out io.Writer) *ClearanceAdapter {
	return &ClearanceAdapter{
		clearances: clearances,
		reviews:    reviews,
		out:        out,
	}
}

// Record sets a section clearance.
func (a *ClearanceAdapter) Record(ctx context.Context, req primary.RecordClearanceRequest) error {
	c, err := a.clearances.RecordClearance(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s clearance for %s is %s\n", c.Section, c.CaseID, c.Status)
	return nil
}

// Object raises an objection on a section.
func (a *ClearanceAdapter) Object(ctx context.Context, caseID, section, remarks string, actor primary.Actor) error {
	c, err := a.clearances.RaiseObjection(ctx, caseID, section, remarks, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s objection raised on %s: %s\n", c.Section, c.CaseID, c.Remarks)
	return nil
}

// Resolve clears a section objection.
func (a *ClearanceAdapter) Resolve(ctx context.Context, caseID, section, remarks string, actor primary.Actor) error {
	c, err := a.clearances.ResolveObjection(ctx, caseID, section, remarks, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s objection on %s resolved (now %s)\n", c.Section, c.CaseID, c.Status)
	return nil
}

// List shows every clearance and review on a case.
func (a *ClearanceAdapter) List(ctx context.Context, caseID string) error {
	clearances, err := a.clearances.ListClearances(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to list clearances: %w", err)
	}
	reviews, err := a.reviews.ListReviews(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(clearances) == 0 {
		fmt.Fprintf(a.out, "No clearances opened for %s\n", caseID)
	} else {
		fmt.Fprintf(a.out, "\n%-10s %-10s %-12s %s\n", "SECTION", "STATUS", "BY", "REMARKS")
		fmt.Fprintln(a.out, rule)
		for _, c := range clearances {
			fmt.Fprintf(a.out, "%-10s %-10s %-12s %s\n", c.Section, c.Status, orDash(c.UpdatedBy), c.Remarks)
		}
	}

	if len(reviews) > 0 {
		fmt.Fprintf(a.out, "\n%-18s %-10s %-12s %s\n", "REVIEW", "STATUS", "REVIEWER", "REMARKS")
		fmt.Fprintln(a.out, rule)
		for _, r := range reviews {
			fmt.Fprintf(a.out, "%-18s %-10s %-12s %s\n", r.Section, r.Status, r.ReviewerID, r.Remarks)
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// SubmitReview records a reviewer verdict.
func (a *ClearanceAdapter) SubmitReview(ctx context.Context, req primary.SubmitReviewRequest) error {
	r, err := a.reviews.SubmitReview(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s review for %s: %s\n", r.Section, r.CaseID, r.Status)
	return nil
}
