package workflow

import "strings"

// Trigger names the domain write that may have unblocked a guard.
type Trigger string

const (
	TriggerAccountsCalculated Trigger = "ACCOUNTS_CALCULATED"
	TriggerPaymentVerified    Trigger = "PAYMENT_VERIFIED"
	TriggerReviewApproved     Trigger = "REVIEW_APPROVED"
	TriggerDeedFinalized      Trigger = "DEED_FINALIZED"
)

// ParseTrigger normalizes and validates a trigger name.
func ParseTrigger(s string) (Trigger, bool) {
	switch t := Trigger(strings.ToUpper(strings.TrimSpace(s))); t {
	case TriggerAccountsCalculated, TriggerPaymentVerified, TriggerReviewApproved, TriggerDeedFinalized:
		return t, true
	}
	return "", false
}

type autoRule struct {
	Trigger Trigger
	From    StageCode
	To      StageCode
}

// autoRules maps (trigger, current stage) to at most one candidate stage.
var autoRules = []autoRule{
	{Trigger: TriggerAccountsCalculated, From: StageAccountsPending, To: StagePaymentPending},
	{Trigger: TriggerAccountsCalculated, From: StageSentToAccounts, To: StageAwaitingPayment},
	{Trigger: TriggerPaymentVerified, From: StageSentToAccounts, To: StageAccountsClear},
	{Trigger: TriggerPaymentVerified, From: StageAwaitingPayment, To: StageAccountsClear},
	{Trigger: TriggerPaymentVerified, From: StagePaymentPending, To: StageReadyForApproval},
	{Trigger: TriggerReviewApproved, From: StageUnderScrutiny, To: StageBCAPending},
	{Trigger: TriggerReviewApproved, From: StageReadyForApproval, To: StageApproved},
	{Trigger: TriggerDeedFinalized, From: StageApproved, To: StageCompleted},
}

// AutoCandidate returns the single edge to attempt when trigger fires while a
// case sits in current. The second result is false when nothing applies.
func AutoCandidate(current StageCode, trigger Trigger) (Edge, bool) {
	for _, r := range autoRules {
		if r.Trigger == trigger && r.From == current {
			return FindEdge(r.From, r.To)
		}
	}
	return Edge{}, false
}
