package workflow

// GuardName is the closed vocabulary of transition guards. The string value is
// the identifier persisted in the transitions table.
type GuardName string

const (
	GuardIntakeComplete            GuardName = "GUARD_INTAKE_COMPLETE"
	GuardScrutinyComplete          GuardName = "GUARD_SCRUTINY_COMPLETE"
	GuardSentToBCAHousing          GuardName = "GUARD_SENT_TO_BCA_HOUSING"
	GuardSentToAccounts            GuardName = "GUARD_SENT_TO_ACCOUNTS"
	GuardBCAClear                  GuardName = "GUARD_BCA_CLEAR"
	GuardBCAObjection              GuardName = "GUARD_BCA_OBJECTION"
	GuardHousingClear              GuardName = "GUARD_HOUSING_CLEAR"
	GuardHousingObjection          GuardName = "GUARD_HOUSING_OBJECTION"
	GuardClearancesComplete        GuardName = "GUARD_CLEARANCES_COMPLETE"
	GuardBCAResolved               GuardName = "GUARD_BCA_RESOLVED"
	GuardHousingResolved           GuardName = "GUARD_HOUSING_RESOLVED"
	GuardBCAHousingReview          GuardName = "GUARD_BCA_HOUSING_REVIEW"
	GuardOWOReviewComplete         GuardName = "GUARD_OWO_REVIEW_COMPLETE"
	GuardAccountsCalculated        GuardName = "GUARD_ACCOUNTS_CALCULATED"
	GuardPaymentVerified           GuardName = "GUARD_PAYMENT_VERIFIED"
	GuardAccountsClear             GuardName = "GUARD_ACCOUNTS_CLEAR"
	GuardAccountsReviewed          GuardName = "GUARD_ACCOUNTS_REVIEWED"
	GuardOWOAccountsReviewComplete GuardName = "GUARD_OWO_ACCOUNTS_REVIEW_COMPLETE"
	GuardApprovalComplete          GuardName = "GUARD_APPROVAL_COMPLETE"
	GuardApprovalRejected          GuardName = "GUARD_APPROVAL_REJECTED"
	GuardDeedFinalized             GuardName = "GUARD_DEED_FINALIZED"
)

var allGuardNames = []GuardName{
	GuardIntakeComplete,
	GuardScrutinyComplete,
	GuardSentToBCAHousing,
	GuardSentToAccounts,
	GuardBCAClear,
	GuardBCAObjection,
	GuardHousingClear,
	GuardHousingObjection,
	GuardClearancesComplete,
	GuardBCAResolved,
	GuardHousingResolved,
	GuardBCAHousingReview,
	GuardOWOReviewComplete,
	GuardAccountsCalculated,
	GuardPaymentVerified,
	GuardAccountsClear,
	GuardAccountsReviewed,
	GuardOWOAccountsReviewComplete,
	GuardApprovalComplete,
	GuardApprovalRejected,
	GuardDeedFinalized,
}

// AllGuardNames returns every guard name in the vocabulary.
func AllGuardNames() []GuardName {
	out := make([]GuardName, len(allGuardNames))
	copy(out, allGuardNames)
	return out
}

// ParseGuardName maps a persisted identifier back into the closed enum.
func ParseGuardName(s string) (GuardName, bool) {
	for _, g := range allGuardNames {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

func (g GuardName) String() string { return string(g) }
