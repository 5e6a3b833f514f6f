package workflow

import "strings"

// Role is the section or office an actor works for.
type Role string

const (
	RoleClerk    Role = "CLERK"
	RoleOWO      Role = "OWO"
	RoleBCA      Role = "BCA"
	RoleHousing  Role = "HOUSING"
	RoleAccounts Role = "ACCOUNTS"
	RoleWater    Role = "WATER"
	RoleApprover Role = "APPROVER"
	RoleAdmin    Role = "ADMIN"
)

var allRoles = []Role{RoleClerk, RoleOWO, RoleBCA, RoleHousing, RoleAccounts, RoleWater, RoleApprover, RoleAdmin}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range allRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Section is a clearance-issuing office.
type Section string

const (
	SectionBCA      Section = "BCA"
	SectionHousing  Section = "HOUSING"
	SectionAccounts Section = "ACCOUNTS"
	SectionWater    Section = "WATER"
)

// ParseSection normalizes and validates a clearance section.
func ParseSection(s string) (Section, bool) {
	switch sec := Section(strings.ToUpper(strings.TrimSpace(s))); sec {
	case SectionBCA, SectionHousing, SectionAccounts, SectionWater:
		return sec, true
	}
	return "", false
}

// RoleForSection returns the role that owns a clearance section.
func RoleForSection(s Section) Role {
	switch s {
	case SectionBCA:
		return RoleBCA
	case SectionHousing:
		return RoleHousing
	case SectionAccounts:
		return RoleAccounts
	case SectionWater:
		return RoleWater
	}
	return RoleAdmin
}

// ClearanceStatus is the state of a section sign-off.
type ClearanceStatus string

const (
	ClearancePending   ClearanceStatus = "PENDING"
	ClearanceClear     ClearanceStatus = "CLEAR"
	ClearanceObjection ClearanceStatus = "OBJECTION"
)

// ParseClearanceStatus normalizes and validates a clearance status.
func ParseClearanceStatus(s string) (ClearanceStatus, bool) {
	switch st := ClearanceStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ClearancePending, ClearanceClear, ClearanceObjection:
		return st, true
	}
	return "", false
}

// ReviewSection identifies which verdict a review records.
type ReviewSection string

const (
	ReviewOWO           ReviewSection = "OWO"
	ReviewOWOClearances ReviewSection = "OWO_CLEARANCES"
	ReviewOWOAccounts   ReviewSection = "OWO_ACCOUNTS"
	ReviewAccounts      ReviewSection = "ACCOUNTS"
	ReviewApproval      ReviewSection = "APPROVAL"
)

// ParseReviewSection normalizes and validates a review section.
func ParseReviewSection(s string) (ReviewSection, bool) {
	switch sec := ReviewSection(strings.ToUpper(strings.TrimSpace(s))); sec {
	case ReviewOWO, ReviewOWOClearances, ReviewOWOAccounts, ReviewAccounts, ReviewApproval:
		return sec, true
	}
	return "", false
}

// RoleForReview returns the role allowed to record a review section.
func RoleForReview(s ReviewSection) Role {
	switch s {
	case ReviewOWO, ReviewOWOClearances, ReviewOWOAccounts:
		return RoleOWO
	case ReviewAccounts:
		return RoleAccounts
	case ReviewApproval:
		return RoleApprover
	}
	return RoleAdmin
}

// ReviewStatus is a reviewer verdict.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// ParseReviewStatus normalizes and validates a review status.
func ParseReviewStatus(s string) (ReviewStatus, bool) {
	switch st := ReviewStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return st, true
	}
	return "", false
}

// AccountsStatus is the state of an accounts breakdown.
type AccountsStatus string

const (
	AccountsPending         AccountsStatus = "PENDING"
	AccountsAwaitingPayment AccountsStatus = "AWAITING_PAYMENT"
	AccountsOnHold          AccountsStatus = "ON_HOLD"
)

// Action is the kind recorded on an audit entry.
type Action string

const (
	ActionCaseCreated               Action = "CASE_CREATED"
	ActionDocumentRecorded          Action = "DOCUMENT_RECORDED"
	ActionDocumentVerified          Action = "DOCUMENT_VERIFIED"
	ActionStageTransition           Action = "STAGE_TRANSITION"
	ActionAutoStageTransition       Action = "AUTO_STAGE_TRANSITION"
	ActionClearanceCreated          Action = "CLEARANCE_CREATED"
	ActionClearanceUpdated          Action = "CLEARANCE_UPDATED"
	ActionObjectionRaised           Action = "OBJECTION_RAISED"
	ActionObjectionResolved         Action = "OBJECTION_RESOLVED"
	ActionReviewRecorded            Action = "REVIEW_RECORDED"
	ActionAccountsCalculated        Action = "ACCOUNTS_CALCULATED"
	ActionPaymentVerified           Action = "PAYMENT_VERIFIED"
	ActionAccountsObjectionRaised   Action = "ACCOUNTS_OBJECTION_RAISED"
	ActionAccountsObjectionResolved Action = "ACCOUNTS_OBJECTION_RESOLVED"
	ActionDeedDrafted               Action = "DEED_DRAFTED"
	ActionDeedFinalized             Action = "DEED_FINALIZED"
	ActionOwnershipTransferred      Action = "OWNERSHIP_TRANSFERRED"
)

// Case status values. Status is free-form; these are the ones the engine sets.
const (
	CaseStatusActive   = "active"
	CaseStatusRejected = "rejected"
	CaseStatusClosed   = "closed"
)
