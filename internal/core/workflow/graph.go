package workflow

// Edge is a single permitted move in the stage graph, bound to one guard.
type Edge struct {
	From      StageCode
	To        StageCode
	Guard     GuardName
	SortOrder int
}

// edgeTable is the only source of legal moves.
var edgeTable = []Edge{
	// Intake and scrutiny
	{From: StageSubmitted, To: StageUnderScrutiny, Guard: GuardIntakeComplete},
	{From: StageUnderScrutiny, To: StageSentToBCAHousing, Guard: GuardSentToBCAHousing},
	{From: StageUnderScrutiny, To: StageBCAPending, Guard: GuardScrutinyComplete},

	// BCA and Housing clearances, including the two objection cycles
	{From: StageSentToBCAHousing, To: StageBCAPending, Guard: GuardBCAHousingReview},
	{From: StageSentToBCAHousing, To: StageBCAHousingClear, Guard: GuardClearancesComplete},
	{From: StageBCAPending, To: StageHousingPending, Guard: GuardBCAClear},
	{From: StageBCAPending, To: StageOnHoldBCA, Guard: GuardBCAObjection},
	{From: StageOnHoldBCA, To: StageBCAPending, Guard: GuardBCAResolved},
	{From: StageHousingPending, To: StageBCAHousingClear, Guard: GuardHousingClear},
	{From: StageHousingPending, To: StageOnHoldHousing, Guard: GuardHousingObjection},
	{From: StageOnHoldHousing, To: StageHousingPending, Guard: GuardHousingResolved},

	// Accounts and payment
	{From: StageBCAHousingClear, To: StageSentToAccounts, Guard: GuardSentToAccounts},
	{From: StageSentToAccounts, To: StageAccountsPending, Guard: GuardOWOReviewComplete},
	{From: StageSentToAccounts, To: StageAwaitingPayment, Guard: GuardAccountsCalculated},
	{From: StageSentToAccounts, To: StageAccountsClear, Guard: GuardAccountsClear},
	{From: StageAccountsPending, To: StagePaymentPending, Guard: GuardAccountsCalculated},
	{From: StageAwaitingPayment, To: StageAccountsClear, Guard: GuardAccountsClear},
	{From: StageAwaitingPayment, To: StageOnHoldAccounts, Guard: GuardAccountsReviewed},
	{From: StageOnHoldAccounts, To: StageAccountsClear, Guard: GuardAccountsClear},
	{From: StagePaymentPending, To: StageReadyForApproval, Guard: GuardPaymentVerified},
	{From: StageAccountsClear, To: StageReadyForApproval, Guard: GuardOWOAccountsReviewComplete},

	// Approval, deed and closure
	{From: StageReadyForApproval, To: StageApproved, Guard: GuardApprovalComplete},
	{From: StageReadyForApproval, To: StageRejected, Guard: GuardApprovalRejected},
	{From: StageApproved, To: StageCompleted, Guard: GuardDeedFinalized},
	{From: StageCompleted, To: StagePostEntries, Guard: GuardDeedFinalized},
	{From: StagePostEntries, To: StageClosed, Guard: GuardDeedFinalized},
	{From: StageRejected, To: StageClosed, Guard: GuardApprovalRejected},
}

func init() {
	for i := range edgeTable {
		edgeTable[i].SortOrder = i + 1
	}
}

// Edges returns every edge in table order.
func Edges() []Edge {
	out := make([]Edge, len(edgeTable))
	copy(out, edgeTable)
	return out
}

// FindEdge returns the edge for a (from, to) pair.
func FindEdge(from, to StageCode) (Edge, bool) {
	for _, e := range edgeTable {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// EdgesFrom returns the outgoing edges of a stage in table order.
func EdgesFrom(from StageCode) []Edge {
	var out []Edge
	for _, e := range edgeTable {
		if e.From == from {
			out = append(out, e)
		}
	}
	return out
}
