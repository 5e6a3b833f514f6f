// Package review contains the pure business logic for reviewer verdicts.
package review

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

// SubmitContext provides context for review submission guards.
type SubmitContext struct {
	CaseID    string
	Section   workflow.ReviewSection
	Status    workflow.ReviewStatus
	ActorRole workflow.Role
	Remarks   string
}

// CanSubmitReview evaluates whether an actor can record a review verdict.
// Rules:
// - OWO sections need OWO, ACCOUNTS needs ACCOUNTS, APPROVAL needs APPROVER (ADMIN always may)
// - A rejection requires remarks
func CanSubmitReview(ctx SubmitContext) GuardResult {
	want := workflow.RoleForReview(ctx.Section)
	if ctx.ActorRole != want && ctx.ActorRole != workflow.RoleAdmin {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only %s can submit the %s review (actor role: %s)", want, ctx.Section, ctx.ActorRole),
		}
	}
	if ctx.Status == workflow.ReviewRejected && ctx.Remarks == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "remarks are required when rejecting",
		}
	}

	return GuardResult{Allowed: true}
}
