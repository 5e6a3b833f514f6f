// Package clearance contains the pure business logic for section clearances.
package clearance

import (
	"fmt"

	"github.com/example/landxfer/internal/core/workflow"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RecordContext provides context for clearance write guards.
type RecordContext struct {
	CaseID        string
	Section       workflow.Section
	ActorRole     workflow.Role
	CurrentStatus workflow.ClearanceStatus // empty when no row exists
	NewStatus     workflow.ClearanceStatus
	Remarks       string
}

func roleAllowed(ctx RecordContext) GuardResult {
	want := workflow.RoleForSection(ctx.Section)
	if ctx.ActorRole != want && ctx.ActorRole != workflow.RoleAdmin {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only %s can act on the %s clearance (actor role: %s)", want, ctx.Section, ctx.ActorRole),
		}
	}
	return GuardResult{Allowed: true}
}

// CanRecordClearance evaluates whether a section can record a clearance status.
// Rules:
// - Actor role must own the section (ADMIN always may)
// - OBJECTION requires remarks
func CanRecordClearance(ctx RecordContext) GuardResult {
	if r := roleAllowed(ctx); !r.Allowed {
		return r
	}
	if ctx.NewStatus == workflow.ClearanceObjection && ctx.Remarks == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "remarks are required when raising an objection",
		}
	}

	return GuardResult{Allowed: true}
}

// CanResolveObjection evaluates whether a section objection can be lifted.
// Rules:
// - Actor role must own the section (ADMIN always may)
// - Clearance must currently be OBJECTION
func CanResolveObjection(ctx RecordContext) GuardResult {
	if r := roleAllowed(ctx); !r.Allowed {
		return r
	}
	if ctx.CurrentStatus != workflow.ClearanceObjection {
		status := string(ctx.CurrentStatus)
		if status == "" {
			status = "none"
		}
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s clearance for case %s is not in objection (status: %s)", ctx.Section, ctx.CaseID, status),
		}
	}

	return GuardResult{Allowed: true}
}
