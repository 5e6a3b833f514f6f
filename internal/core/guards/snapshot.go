// Package guards contains the transition guard predicates. Each guard is a pure
// function over a Snapshot of the case's related records; guards that
// provision downstream rows describe them as effects instead of writing.
// This is part of the Functional Core - no I/O, only pure functions.
package guards

import (
	"fmt"

	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
)

// Result is the verdict of a guard. Metadata explains a denial (or, for
// provisioning guards, what will be provisioned on allow).
type Result struct {
	Allowed  bool
	Reason   string
	Metadata map[string]any
}

// Error converts the result to an error if not allowed.
func (r Result) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allow() Result {
	return Result{Allowed: true}
}

func deny(reason string, metadata map[string]any) Result {
	return Result{Allowed: false, Reason: reason, Metadata: metadata}
}

// ClearanceSummary contains minimal clearance info for guard evaluation.
type ClearanceSummary struct {
	Section workflow.Section
	Status  workflow.ClearanceStatus
}

// ReviewSummary contains minimal review info for guard evaluation.
type ReviewSummary struct {
	Section workflow.ReviewSection
	Status  workflow.ReviewStatus
}

// AccountsSummary contains minimal accounts breakdown info for guard evaluation.
type AccountsSummary struct {
	TotalAmount     int64
	PaidAmount      int64
	PaymentVerified bool
	Status          workflow.AccountsStatus
	ObjectionReason string
}

// DeedSummary contains minimal deed info for guard evaluation.
type DeedSummary struct {
	IsFinalized bool
	ContentHash string
}

// Snapshot is everything a guard may look at. Only the record kinds named in
// the guard's Needs are populated.
type Snapshot struct {
	CaseID    string
	ActorID   string
	ActorRole workflow.Role
	From      workflow.StageCode
	To        workflow.StageCode
	Extra     map[string]any

	Documents  []intake.DocumentStatus
	Clearances []ClearanceSummary
	Reviews    []ReviewSummary
	Accounts   *AccountsSummary
	Deed       *DeedSummary
}

// Clearance returns the clearance for a section, if any.
func (s Snapshot) Clearance(section workflow.Section) (ClearanceSummary, bool) {
	for _, c := range s.Clearances {
		if c.Section == section {
			return c, true
		}
	}
	return ClearanceSummary{}, false
}

// ClearanceStatus returns the status for a section, or "" when absent.
func (s Snapshot) ClearanceStatus(section workflow.Section) workflow.ClearanceStatus {
	c, ok := s.Clearance(section)
	if !ok {
		return ""
	}
	return c.Status
}

// ReviewStatus returns the review verdict for a section, or "" when absent.
func (s Snapshot) ReviewStatus(section workflow.ReviewSection) workflow.ReviewStatus {
	for _, r := range s.Reviews {
		if r.Section == section {
			return r.Status
		}
	}
	return ""
}

// HasRole reports whether the actor holds role. ADMIN holds every role.
func (s Snapshot) HasRole(role workflow.Role) bool {
	return s.ActorRole == role || s.ActorRole == workflow.RoleAdmin
}

// Need is a bitmask of the record kinds a guard reads.
type Need uint8

const (
	NeedDocuments Need = 1 << iota
	NeedClearances
	NeedReviews
	NeedAccounts
	NeedDeed
)

// Has reports whether n includes kind.
func (n Need) Has(kind Need) bool {
	return n&kind != 0
}
