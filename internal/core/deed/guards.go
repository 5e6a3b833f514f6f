// Package deed contains the pure business logic for transfer deeds.
// This is part of the Functional Core - no I/O, only pure functions.
package deed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
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

// DraftContext provides context for deed drafting guards.
type DraftContext struct {
	CaseID      string
	CaseStage   string
	DeedExists  bool
	IsFinalized bool
}

// CanDraft evaluates whether a deed can be drafted or redrafted.
// Rules:
// - Case must be READY_FOR_APPROVAL or APPROVED
// - A finalized deed is immutable
func CanDraft(ctx DraftContext) GuardResult {
	if ctx.CaseStage != "READY_FOR_APPROVAL" && ctx.CaseStage != "APPROVED" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only draft a deed for case %s once it is ready for approval (current stage: %s)", ctx.CaseID, ctx.CaseStage),
		}
	}
	if ctx.DeedExists && ctx.IsFinalized {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("deed for case %s is finalized and cannot be changed", ctx.CaseID),
		}
	}

	return GuardResult{Allowed: true}
}

// FinalizeContext provides context for deed finalization guards.
type FinalizeContext struct {
	CaseID      string
	CaseStage   string
	DeedExists  bool
	IsFinalized bool
	Witness1    string
	Witness2    string
	Content     string
}

// CanFinalize evaluates whether a deed can be finalized.
// Rules:
// - Case must be APPROVED
// - Deed must be drafted and not already finalized
// - Both witnesses and the content must be present
func CanFinalize(ctx FinalizeContext) GuardResult {
	if ctx.CaseStage != "APPROVED" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("can only finalize the deed of an approved case (case %s is %s)", ctx.CaseID, ctx.CaseStage),
		}
	}
	if !ctx.DeedExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("no deed drafted for case %s", ctx.CaseID),
		}
	}
	if ctx.IsFinalized {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("deed for case %s is already finalized", ctx.CaseID),
		}
	}

	var missing []string
	if strings.TrimSpace(ctx.Witness1) == "" {
		missing = append(missing, "witness 1")
	}
	if strings.TrimSpace(ctx.Witness2) == "" {
		missing = append(missing, "witness 2")
	}
	if strings.TrimSpace(ctx.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot finalize deed: missing %s", strings.Join(missing, ", ")),
		}
	}

	return GuardResult{Allowed: true}
}

// ContentHash returns the hex SHA-256 digest binding the deed text to its witnesses.
func ContentHash(content, witness1, witness2 string) string {
	h := sha256.New()
	h.Write([]byte(content))
	h.Write([]byte{0})
	h.Write([]byte(witness1))
	h.Write([]byte{0})
	h.Write([]byte(witness2))
	return hex.EncodeToString(h.Sum(nil))
}

// TransferOwnershipContext provides context for ownership transfer guards.
type TransferOwnershipContext struct {
	CaseID        string
	CaseStage     string
	DeedFinalized bool
	OwnerRef      string
	BuyerRef      string
}

// CanTransferOwnership evaluates whether the plot owner can be switched to the buyer.
// Rules:
// - Case must be in POST_ENTRIES
// - Deed must be finalized
// - Ownership must not already be with the buyer
func CanTransferOwnership(ctx TransferOwnershipContext) GuardResult {
	if ctx.CaseStage != "POST_ENTRIES" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("ownership can only be transferred during post entries (case %s is %s)", ctx.CaseID, ctx.CaseStage),
		}
	}
	if !ctx.DeedFinalized {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("deed for case %s is not finalized", ctx.CaseID),
		}
	}
	if ctx.OwnerRef == ctx.BuyerRef {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("ownership for case %s already transferred", ctx.CaseID),
		}
	}

	return GuardResult{Allowed: true}
}
