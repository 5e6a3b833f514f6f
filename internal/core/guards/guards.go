package guards

import (
	"fmt"
	"strings"

	"github.com/example/landxfer/internal/core/accounts"
	"github.com/example/landxfer/internal/core/effects"
	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
)

var bcaHousing = []workflow.Section{workflow.SectionBCA, workflow.SectionHousing}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func sectionNames(sections []workflow.Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, string(s))
	}
	return out
}

func requireRole(s Snapshot, role workflow.Role, what string) (Result, bool) {
	if s.HasRole(role) {
		return Result{}, true
	}
	return deny(
		fmt.Sprintf("only %s can %s (actor role: %s)", role, what, orNone(string(s.ActorRole))),
		map[string]any{"requiredRole": string(role), "actorRole": string(s.ActorRole)},
	), false
}

func requireReview(s Snapshot, section workflow.ReviewSection, want workflow.ReviewStatus) Result {
	got := s.ReviewStatus(section)
	if got != want {
		return deny(
			fmt.Sprintf("%s review is not %s (status: %s)", section, strings.ToLower(string(want)), orNone(string(got))),
			map[string]any{"reviewSection": string(section), "reviewStatus": orNone(string(got))},
		)
	}
	return allow()
}

// IntakeComplete allows when every required document is recorded and its
// original has been seen.
func IntakeComplete(s Snapshot) Result {
	c := intake.Evaluate(s.Documents)
	if c.Complete() {
		return allow()
	}

	missing := append([]string{}, c.Missing...)
	notSeen := append([]string{}, c.NotSeen...)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %s", strings.Join(missing, ", ")))
	}
	if len(notSeen) > 0 {
		parts = append(parts, fmt.Sprintf("originals not seen for %s", strings.Join(notSeen, ", ")))
	}
	return deny(
		fmt.Sprintf("intake incomplete: %s", strings.Join(parts, "; ")),
		map[string]any{"missingDocs": missing, "notSeenDocs": notSeen},
	)
}

// ScrutinyComplete allows an OWO actor once the OWO review is approved.
func ScrutinyComplete(s Snapshot) Result {
	if r, ok := requireRole(s, workflow.RoleOWO, "complete scrutiny"); !ok {
		return r
	}
	return requireReview(s, workflow.ReviewOWO, workflow.ReviewApproved)
}

func missingSections(s Snapshot, sections []workflow.Section) []workflow.Section {
	var missing []workflow.Section
	for _, sec := range sections {
		if _, ok := s.Clearance(sec); !ok {
			missing = append(missing, sec)
		}
	}
	return missing
}

// SentToBCAHousing is ScrutinyComplete plus provisioning of the BCA and
// HOUSING clearance rows.
func SentToBCAHousing(s Snapshot) Result {
	r := ScrutinyComplete(s)
	if !r.Allowed {
		return r
	}
	return Result{
		Allowed:  true,
		Metadata: map[string]any{"provisioned": sectionNames(missingSections(s, bcaHousing))},
	}
}

// ProvisionBCAHousing plans PENDING clearance rows for BCA and HOUSING where
// the case has none.
func ProvisionBCAHousing(s Snapshot) []effects.Effect {
	missing := missingSections(s, bcaHousing)
	var rows []effects.Effect
	for _, sec := range missing {
		rows = append(rows, effects.ProvisionClearanceEffect{
			CaseID:  s.CaseID,
			Section: sec,
			Status:  workflow.ClearancePending,
		})
	}
	return provisioned(s.CaseID, "clearances opened", sectionNames(missing), rows)
}

// BCAHousingReview allows once both BCA and HOUSING clearance rows exist.
func BCAHousingReview(s Snapshot) Result {
	missing := missingSections(s, bcaHousing)
	if len(missing) > 0 {
		return deny(
			fmt.Sprintf("clearances not opened for %s", strings.Join(sectionNames(missing), ", ")),
			map[string]any{"missingSections": sectionNames(missing)},
		)
	}
	return allow()
}

// SectionClear allows when the section's clearance is CLEAR.
func SectionClear(section workflow.Section) func(Snapshot) Result {
	return func(s Snapshot) Result {
		st := s.ClearanceStatus(section)
		if st != workflow.ClearanceClear {
			return deny(
				fmt.Sprintf("%s clearance is not clear (status: %s)", section, orNone(string(st))),
				map[string]any{"section": string(section), "clearanceStatus": orNone(string(st))},
			)
		}
		return allow()
	}
}

// SectionObjection allows the section's own staff to put the case on hold
// once its clearance carries an objection.
func SectionObjection(section workflow.Section) func(Snapshot) Result {
	return func(s Snapshot) Result {
		if r, ok := requireRole(s, workflow.RoleForSection(section), fmt.Sprintf("hold a case for a %s objection", section)); !ok {
			return r
		}
		st := s.ClearanceStatus(section)
		if st != workflow.ClearanceObjection {
			return deny(
				fmt.Sprintf("%s clearance has no objection (status: %s)", section, orNone(string(st))),
				map[string]any{"section": string(section), "clearanceStatus": orNone(string(st))},
			)
		}
		return allow()
	}
}

// SectionResolved allows once the section's clearance exists and is no longer
// in objection.
func SectionResolved(section workflow.Section) func(Snapshot) Result {
	return func(s Snapshot) Result {
		st := s.ClearanceStatus(section)
		if st == "" {
			return deny(
				fmt.Sprintf("no %s clearance on record", section),
				map[string]any{"section": string(section), "clearanceStatus": "none"},
			)
		}
		if st == workflow.ClearanceObjection {
			return deny(
				fmt.Sprintf("%s objection is still open", section),
				map[string]any{"section": string(section), "clearanceStatus": string(st)},
			)
		}
		return allow()
	}
}

func pendingSections(s Snapshot, sections []workflow.Section) []workflow.Section {
	var pending []workflow.Section
	for _, sec := range sections {
		if s.ClearanceStatus(sec) != workflow.ClearanceClear {
			pending = append(pending, sec)
		}
	}
	return pending
}

// ClearancesComplete allows when BCA and HOUSING are both CLEAR.
func ClearancesComplete(s Snapshot) Result {
	pending := pendingSections(s, bcaHousing)
	if len(pending) > 0 {
		return deny(
			fmt.Sprintf("clearances pending for %s", strings.Join(sectionNames(pending), ", ")),
			map[string]any{"pendingSections": sectionNames(pending)},
		)
	}
	return allow()
}

// SentToAccounts is ClearancesComplete plus provisioning of the ACCOUNTS
// clearance and an empty accounts breakdown.
func SentToAccounts(s Snapshot) Result {
	r := ClearancesComplete(s)
	if !r.Allowed {
		return r
	}
	return Result{
		Allowed: true,
		Metadata: map[string]any{
			"provisioned":        sectionNames(missingSections(s, []workflow.Section{workflow.SectionAccounts})),
			"provisionBreakdown": s.Accounts == nil,
		},
	}
}

// ProvisionAccounts plans the ACCOUNTS clearance and breakdown rows where absent.
func ProvisionAccounts(s Snapshot) []effects.Effect {
	var (
		rows   []effects.Effect
		opened []string
	)
	if _, ok := s.Clearance(workflow.SectionAccounts); !ok {
		rows = append(rows, effects.ProvisionClearanceEffect{
			CaseID:  s.CaseID,
			Section: workflow.SectionAccounts,
			Status:  workflow.ClearancePending,
		})
		opened = append(opened, "clearance")
	}
	if s.Accounts == nil {
		rows = append(rows, effects.ProvisionAccountsEffect{
			CaseID: s.CaseID,
			Status: workflow.AccountsPending,
		})
		opened = append(opened, "breakdown")
	}
	return provisioned(s.CaseID, "accounts opened", opened, rows)
}

// provisioned groups planned rows into one unit followed by a log line naming
// what it opens. Nothing is planned when no rows are missing.
func provisioned(caseID, msg string, opened []string, rows []effects.Effect) []effects.Effect {
	if len(rows) == 0 {
		return nil
	}
	return []effects.Effect{
		effects.CompositeEffect{Effects: rows},
		effects.LogEffect{
			Level:   "info",
			Message: msg,
			Fields:  map[string]any{"case_id": caseID, "opened": opened},
		},
	}
}

// OWOReviewComplete allows an OWO actor once the OWO review of the section
// clearances is approved.
func OWOReviewComplete(s Snapshot) Result {
	if r, ok := requireRole(s, workflow.RoleOWO, "review clearances"); !ok {
		return r
	}
	return requireReview(s, workflow.ReviewOWOClearances, workflow.ReviewApproved)
}

func accountsTotals(s Snapshot) (total, paid int64) {
	if s.Accounts == nil {
		return 0, 0
	}
	return s.Accounts.TotalAmount, s.Accounts.PaidAmount
}

// AccountsCalculated allows once a breakdown exists with a positive total.
func AccountsCalculated(s Snapshot) Result {
	total, _ := accountsTotals(s)
	if s.Accounts == nil || total <= 0 {
		return deny(
			"accounts breakdown has not been calculated",
			map[string]any{"totalAmount": total},
		)
	}
	return allow()
}

// PaymentVerified allows once the paid amount covers a positive total.
func PaymentVerified(s Snapshot) Result {
	total, paid := accountsTotals(s)
	outcome := accounts.ApplyPayment(total, paid)
	metadata := map[string]any{
		"totalAmount":     total,
		"paidAmount":      paid,
		"remainingAmount": outcome.Remaining,
	}
	if total <= 0 {
		return deny("accounts breakdown has not been calculated", metadata)
	}
	if !outcome.Verified {
		return deny(fmt.Sprintf("payment incomplete: %d of %d paid", paid, total), metadata)
	}
	return allow()
}

// AccountsClear allows once payment is verified and the ACCOUNTS clearance
// is CLEAR.
func AccountsClear(s Snapshot) Result {
	verified := s.Accounts != nil && s.Accounts.PaymentVerified
	st := s.ClearanceStatus(workflow.SectionAccounts)
	metadata := map[string]any{
		"paymentVerified": verified,
		"clearanceStatus": orNone(string(st)),
	}
	if !verified {
		return deny("payment has not been verified", metadata)
	}
	if st != workflow.ClearanceClear {
		return deny(fmt.Sprintf("ACCOUNTS clearance is not clear (status: %s)", orNone(string(st))), metadata)
	}
	return allow()
}

// AccountsReviewed allows accounts staff to put a case on hold once the
// breakdown carries an objection.
func AccountsReviewed(s Snapshot) Result {
	if r, ok := requireRole(s, workflow.RoleAccounts, "hold a case for an accounts objection"); !ok {
		return r
	}
	status := ""
	if s.Accounts != nil {
		status = string(s.Accounts.Status)
	}
	if s.Accounts == nil || s.Accounts.Status != workflow.AccountsOnHold || strings.TrimSpace(s.Accounts.ObjectionReason) == "" {
		return deny(
			fmt.Sprintf("accounts are not on hold with an objection (status: %s)", orNone(status)),
			map[string]any{"accountsStatus": orNone(status)},
		)
	}
	return allow()
}

// OWOAccountsReviewComplete allows an OWO actor once the OWO review of the
// accounts is approved.
func OWOAccountsReviewComplete(s Snapshot) Result {
	if r, ok := requireRole(s, workflow.RoleOWO, "review accounts"); !ok {
		return r
	}
	return requireReview(s, workflow.ReviewOWOAccounts, workflow.ReviewApproved)
}

// ApprovalComplete allows an approver once the approval review is approved.
func ApprovalComplete(s Snapshot) Result {
	if r, ok := requireRole(s, workflow.RoleApprover, "approve a transfer"); !ok {
		return r
	}
	return requireReview(s, workflow.ReviewApproval, workflow.ReviewApproved)
}

// ApprovalRejected allows an approver once the approval review is rejected.
func ApprovalRejected(s Snapshot) Result {
	if r, ok := requireRole(s, workflow.RoleApprover, "reject a transfer"); !ok {
		return r
	}
	return requireReview(s, workflow.ReviewApproval, workflow.ReviewRejected)
}

// DeedFinalized allows once the deed exists, is finalized and carries a hash.
func DeedFinalized(s Snapshot) Result {
	if s.Deed == nil {
		return deny("no deed drafted", map[string]any{"deedExists": false, "isFinalized": false})
	}
	metadata := map[string]any{"deedExists": true, "isFinalized": s.Deed.IsFinalized}
	if !s.Deed.IsFinalized {
		return deny("deed is not finalized", metadata)
	}
	if s.Deed.ContentHash == "" {
		return deny("deed has no content hash", metadata)
	}
	return allow()
}
