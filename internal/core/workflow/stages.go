// Package workflow contains the fixed stage catalog, transition graph and
// vocabulary for property-transfer cases.
// This is part of the Functional Core - no I/O, only pure functions and data.
package workflow

import (
	"strconv"
	"strings"
)

// StageCode is the stable string identifier of a stage.
type StageCode string

const (
	StageSubmitted        StageCode = "SUBMITTED"
	StageUnderScrutiny    StageCode = "UNDER_SCRUTINY"
	StageSentToBCAHousing StageCode = "SENT_TO_BCA_HOUSING"
	StageBCAPending       StageCode = "BCA_PENDING"
	StageHousingPending   StageCode = "HOUSING_PENDING"
	StageOnHoldBCA        StageCode = "ON_HOLD_BCA"
	StageOnHoldHousing    StageCode = "ON_HOLD_HOUSING"
	StageBCAHousingClear  StageCode = "BCA_HOUSING_CLEAR"
	StageSentToAccounts   StageCode = "SENT_TO_ACCOUNTS"
	StageAccountsPending  StageCode = "ACCOUNTS_PENDING"
	StageAwaitingPayment  StageCode = "AWAITING_PAYMENT"
	StagePaymentPending   StageCode = "PAYMENT_PENDING"
	StageAccountsClear    StageCode = "ACCOUNTS_CLEAR"
	StageOnHoldAccounts   StageCode = "ON_HOLD_ACCOUNTS"
	StageReadyForApproval StageCode = "READY_FOR_APPROVAL"
	StageApproved         StageCode = "APPROVED"
	StageRejected         StageCode = "REJECTED"
	StagePostEntries      StageCode = "POST_ENTRIES"
	StageCompleted        StageCode = "COMPLETED"
	StageClosed           StageCode = "CLOSED"
)

// Stage is immutable reference data. ID is the 1-based catalog position.
type Stage struct {
	ID        int
	Code      StageCode
	Name      string
	SortOrder int
}

var stageCatalog = []Stage{
	{ID: 1, Code: StageSubmitted, Name: "Submitted"},
	{ID: 2, Code: StageUnderScrutiny, Name: "Under Scrutiny"},
	{ID: 3, Code: StageSentToBCAHousing, Name: "Sent to BCA & Housing"},
	{ID: 4, Code: StageBCAPending, Name: "BCA Clearance Pending"},
	{ID: 5, Code: StageHousingPending, Name: "Housing Clearance Pending"},
	{ID: 6, Code: StageOnHoldBCA, Name: "On Hold (BCA Objection)"},
	{ID: 7, Code: StageOnHoldHousing, Name: "On Hold (Housing Objection)"},
	{ID: 8, Code: StageBCAHousingClear, Name: "BCA & Housing Clear"},
	{ID: 9, Code: StageSentToAccounts, Name: "Sent to Accounts"},
	{ID: 10, Code: StageAccountsPending, Name: "Accounts Pending"},
	{ID: 11, Code: StageAwaitingPayment, Name: "Awaiting Payment"},
	{ID: 12, Code: StagePaymentPending, Name: "Payment Pending"},
	{ID: 13, Code: StageAccountsClear, Name: "Accounts Clear"},
	{ID: 14, Code: StageOnHoldAccounts, Name: "On Hold (Accounts)"},
	{ID: 15, Code: StageReadyForApproval, Name: "Ready for Approval"},
	{ID: 16, Code: StageApproved, Name: "Approved"},
	{ID: 17, Code: StageRejected, Name: "Rejected"},
	{ID: 18, Code: StagePostEntries, Name: "Post Entries"},
	{ID: 19, Code: StageCompleted, Name: "Completed"},
	{ID: 20, Code: StageClosed, Name: "Closed"},
}

func init() {
	for i := range stageCatalog {
		stageCatalog[i].SortOrder = stageCatalog[i].ID
	}
}

// Stages returns the stage catalog in order.
func Stages() []Stage {
	out := make([]Stage, len(stageCatalog))
	copy(out, stageCatalog)
	return out
}

// InitialStage is the stage every case is created in.
func InitialStage() Stage {
	return stageCatalog[0]
}

// StageByCode looks up a stage by its code.
func StageByCode(code StageCode) (Stage, bool) {
	for _, s := range stageCatalog {
		if s.Code == code {
			return s, true
		}
	}
	return Stage{}, false
}

// StageByID looks up a stage by its numeric id.
func StageByID(id int) (Stage, bool) {
	if id < 1 || id > len(stageCatalog) {
		return Stage{}, false
	}
	return stageCatalog[id-1], true
}

// ParseStageRef resolves either a stage code (case-insensitive) or a numeric id.
func ParseStageRef(ref string) (Stage, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Stage{}, false
	}
	if id, err := strconv.Atoi(ref); err == nil {
		return StageByID(id)
	}
	return StageByCode(StageCode(strings.ToUpper(ref)))
}
