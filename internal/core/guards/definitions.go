package guards

import (
	"github.com/example/landxfer/internal/core/effects"
	"github.com/example/landxfer/internal/core/workflow"
)

// Definition binds a guard name to the records it reads, its pure predicate
// and, for provisioning guards, the effects to apply when it allows.
type Definition struct {
	Name      workflow.GuardName
	Needs     Need
	Check     func(Snapshot) Result
	Provision func(Snapshot) []effects.Effect
}

// Definitions returns the full guard table keyed by name.
func Definitions() map[workflow.GuardName]Definition {
	defs := []Definition{
		{Name: workflow.GuardIntakeComplete, Needs: NeedDocuments, Check: IntakeComplete},
		{Name: workflow.GuardScrutinyComplete, Needs: NeedReviews, Check: ScrutinyComplete},
		{Name: workflow.GuardSentToBCAHousing, Needs: NeedReviews | NeedClearances, Check: SentToBCAHousing, Provision: ProvisionBCAHousing},
		{Name: workflow.GuardBCAHousingReview, Needs: NeedClearances, Check: BCAHousingReview},
		{Name: workflow.GuardBCAClear, Needs: NeedClearances, Check: SectionClear(workflow.SectionBCA)},
		{Name: workflow.GuardHousingClear, Needs: NeedClearances, Check: SectionClear(workflow.SectionHousing)},
		{Name: workflow.GuardBCAObjection, Needs: NeedClearances, Check: SectionObjection(workflow.SectionBCA)},
		{Name: workflow.GuardHousingObjection, Needs: NeedClearances, Check: SectionObjection(workflow.SectionHousing)},
		{Name: workflow.GuardBCAResolved, Needs: NeedClearances, Check: SectionResolved(workflow.SectionBCA)},
		{Name: workflow.GuardHousingResolved, Needs: NeedClearances, Check: SectionResolved(workflow.SectionHousing)},
		{Name: workflow.GuardClearancesComplete, Needs: NeedClearances, Check: ClearancesComplete},
		{Name: workflow.GuardSentToAccounts, Needs: NeedClearances | NeedAccounts, Check: SentToAccounts, Provision: ProvisionAccounts},
		{Name: workflow.GuardOWOReviewComplete, Needs: NeedReviews, Check: OWOReviewComplete},
		{Name: workflow.GuardAccountsCalculated, Needs: NeedAccounts, Check: AccountsCalculated},
		{Name: workflow.GuardPaymentVerified, Needs: NeedAccounts, Check: PaymentVerified},
		{Name: workflow.GuardAccountsClear, Needs: NeedAccounts | NeedClearances, Check: AccountsClear},
		{Name: workflow.GuardAccountsReviewed, Needs: NeedAccounts, Check: AccountsReviewed},
		{Name: workflow.GuardOWOAccountsReviewComplete, Needs: NeedReviews, Check: OWOAccountsReviewComplete},
		{Name: workflow.GuardApprovalComplete, Needs: NeedReviews, Check: ApprovalComplete},
		{Name: workflow.GuardApprovalRejected, Needs: NeedReviews, Check: ApprovalRejected},
		{Name: workflow.GuardDeedFinalized, Needs: NeedDeed, Check: DeedFinalized},
	}

	out := make(map[workflow.GuardName]Definition, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}
