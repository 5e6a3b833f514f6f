package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/ports/primary"
)

// WorkflowAdapter translates transition commands to WorkflowService calls.
type WorkflowAdapter struct {
	service primary.WorkflowService
	out     io.Writer
}

// NewWorkflowAdapter creates a new WorkflowAdapter with the given service.
func NewWorkflowAdapter(service primary.WorkflowService, out io.Writer) *WorkflowAdapter {
	return &WorkflowAdapter{
		service: service,
		out:     out,
	}
}

func verdict(allowed bool) string {
	if allowed {
		return color.New(color.FgGreen).Sprint("ALLOWED")
	}
	return color.New(color.FgRed).Sprint("DENIED ")
}

func (a *WorkflowAdapter) printMetadata(metadata map[string]any) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "    %s: %v\n", k, metadata[k])
	}
}

// Request moves a case. A guard denial is printed with its metadata and
// returned.
func (a *WorkflowAdapter) Request(ctx context.Context, req primary.TransitionRequest) error {
	resp, err := a.service.RequestTransition(ctx, req)
	if err != nil {
		var werr *workflow.Error
		if errors.As(err, &werr) && werr.GuardName != "" {
			fmt.Fprintf(a.out, "%s %s: %s\n", verdict(false), werr.GuardName, werr.Reason)
			a.printMetadata(werr.Metadata)
		}
		return err
	}

	fmt.Fprintf(a.out, "✓ Case %s moved %s → %s (%s)\n", resp.Case.ID, resp.FromStage, resp.ToStage, resp.GuardName)
	if p, ok := resp.GuardMetadata["provisioned"]; ok {
		if sections, ok := p.([]string); ok && len(sections) > 0 {
			fmt.Fprintf(a.out, "  provisioned: %v\n", sections)
		}
	}
	return nil
}

// Check evaluates a move without performing it.
func (a *WorkflowAdapter) Check(ctx context.Context, req primary.TransitionRequest) error {
	check, err := a.service.CheckTransition(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s → %s (%s)\n", verdict(check.Allowed), check.FromStage, check.ToStage, check.GuardName)
	if check.Reason != "" {
		fmt.Fprintf(a.out, "  %s\n", check.Reason)
	}
	a.printMetadata(check.Metadata)
	return nil
}

// Available lists every outgoing edge of the case's stage with its verdict.
func (a *WorkflowAdapter) Available(ctx context.Context, caseID string, actor primary.Actor) error {
	checks, err := a.service.AvailableTransitions(ctx, caseID, actor)
	if err != nil {
		return fmt.Errorf("failed to list transitions: %w", err)
	}

	if len(checks) == 0 {
		fmt.Fprintf(a.out, "No transitions out of the current stage of %s\n", caseID)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-7s %-22s %-30s %s\n", "", "TO", "GUARD", "REASON")
	fmt.Fprintln(a.out, rule)
	for _, c := range checks {
		fmt.Fprintf(a.out, "%s %-22s %-30s %s\n", verdict(c.Allowed), c.ToStage, c.GuardName, c.Reason)
	}
	fmt.Fprintln(a.out)

	return nil
}
