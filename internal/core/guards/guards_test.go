package guards

import (
	"reflect"
	"testing"

	"github.com/example/landxfer/internal/core/effects"
	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
)

func seenDocs() []intake.DocumentStatus {
	var docs []intake.DocumentStatus
	for _, d := range intake.RequiredDocuments() {
		docs = append(docs, intake.DocumentStatus{DocType: d, OriginalSeen: true})
	}
	return docs
}

func clearances(pairs ...string) []ClearanceSummary {
	var out []ClearanceSummary
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, ClearanceSummary{Section: workflow.Section(pairs[i]), Status: workflow.ClearanceStatus(pairs[i+1])})
	}
	return out
}

func reviews(pairs ...string) []ReviewSummary {
	var out []ReviewSummary
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, ReviewSummary{Section: workflow.ReviewSection(pairs[i]), Status: workflow.ReviewStatus(pairs[i+1])})
	}
	return out
}

type guardCase struct {
	name        string
	snap        Snapshot
	wantAllowed bool
	wantReason  string
}

func runGuardCases(t *testing.T, check func(Snapshot) Result, tests []guardCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := check(tt.snap)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason %q)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestIntakeComplete(t *testing.T) {
	sixSeen := seenDocs()
	sixSeen[6].OriginalSeen = false

	runGuardCases(t, IntakeComplete, []guardCase{
		{
			name:        "all seven seen",
			snap:        Snapshot{CaseID: "APP-0001", Documents: seenDocs()},
			wantAllowed: true,
		},
		{
			name:        "six of seven seen",
			snap:        Snapshot{CaseID: "APP-0001", Documents: sixSeen},
			wantAllowed: false,
			wantReason:  "intake incomplete: originals not seen for SITE_PLAN",
		},
		{
			name:        "one missing",
			snap:        Snapshot{CaseID: "APP-0001", Documents: seenDocs()[1:]},
			wantAllowed: false,
			wantReason:  "intake incomplete: missing SALE_DEED",
		},
	})
}

func TestIntakeCompleteNamesUnseenDocuments(t *testing.T) {
	docs := seenDocs()
	docs[2].OriginalSeen = false

	result := IntakeComplete(Snapshot{CaseID: "APP-0001", Documents: docs})
	if result.Allowed {
		t.Fatal("expected intake guard to deny")
	}
	notSeen, ok := result.Metadata["notSeenDocs"].([]string)
	if !ok {
		t.Fatalf("notSeenDocs has type %T", result.Metadata["notSeenDocs"])
	}
	if !reflect.DeepEqual(notSeen, []string{intake.DocCNICBuyer}) {
		t.Errorf("notSeenDocs = %v, want [%s]", notSeen, intake.DocCNICBuyer)
	}
	if missing := result.Metadata["missingDocs"].([]string); len(missing) != 0 {
		t.Errorf("missingDocs = %v, want empty", missing)
	}
}

func TestScrutinyComplete(t *testing.T) {
	runGuardCases(t, ScrutinyComplete, []guardCase{
		{
			name:        "owo with approved review",
			snap:        Snapshot{ActorRole: workflow.RoleOWO, Reviews: reviews("OWO", "APPROVED")},
			wantAllowed: true,
		},
		{
			name:        "admin with approved review",
			snap:        Snapshot{ActorRole: workflow.RoleAdmin, Reviews: reviews("OWO", "APPROVED")},
			wantAllowed: true,
		},
		{
			name:        "clerk is refused regardless of data",
			snap:        Snapshot{ActorRole: workflow.RoleClerk, Reviews: reviews("OWO", "APPROVED")},
			wantAllowed: false,
			wantReason:  "only OWO can complete scrutiny (actor role: CLERK)",
		},
		{
			name:        "owo without review",
			snap:        Snapshot{ActorRole: workflow.RoleOWO},
			wantAllowed: false,
			wantReason:  "OWO review is not approved (status: none)",
		},
		{
			name:        "owo with rejected review",
			snap:        Snapshot{ActorRole: workflow.RoleOWO, Reviews: reviews("OWO", "REJECTED")},
			wantAllowed: false,
			wantReason:  "OWO review is not approved (status: REJECTED)",
		},
	})
}

func TestSentToBCAHousingProvisioning(t *testing.T) {
	fresh := Snapshot{CaseID: "APP-0001", ActorRole: workflow.RoleOWO, Reviews: reviews("OWO", "APPROVED")}

	result := SentToBCAHousing(fresh)
	if !result.Allowed {
		t.Fatalf("expected allow, got %q", result.Reason)
	}
	if got := result.Metadata["provisioned"]; !reflect.DeepEqual(got, []string{"BCA", "HOUSING"}) {
		t.Errorf("provisioned = %v, want [BCA HOUSING]", got)
	}

	effs := ProvisionBCAHousing(fresh)
	want := []effects.Effect{
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.ProvisionClearanceEffect{CaseID: "APP-0001", Section: workflow.SectionBCA, Status: workflow.ClearancePending},
			effects.ProvisionClearanceEffect{CaseID: "APP-0001", Section: workflow.SectionHousing, Status: workflow.ClearancePending},
		}},
		effects.LogEffect{
			Level:   "info",
			Message: "clearances opened",
			Fields:  map[string]any{"case_id": "APP-0001", "opened": []string{"BCA", "HOUSING"}},
		},
	}
	if !reflect.DeepEqual(effs, want) {
		t.Errorf("ProvisionBCAHousing = %#v, want %#v", effs, want)
	}

	// Once rows exist, re-running plans nothing.
	provisioned := fresh
	provisioned.Clearances = clearances("BCA", "PENDING", "HOUSING", "OBJECTION")
	if effs := ProvisionBCAHousing(provisioned); len(effs) != 0 {
		t.Errorf("expected no effects on second run, got %d", len(effs))
	}

	partial := fresh
	partial.Clearances = clearances("BCA", "CLEAR")
	effs = ProvisionBCAHousing(partial)
	if len(effs) != 2 {
		t.Fatalf("expected a composite and a log effect, got %#v", effs)
	}
	rows := effs[0].(effects.CompositeEffect).Effects
	if len(rows) != 1 || rows[0].(effects.ProvisionClearanceEffect).Section != workflow.SectionHousing {
		t.Errorf("expected only HOUSING to be provisioned, got %#v", rows)
	}
}

func TestBCAHousingReview(t *testing.T) {
	runGuardCases(t, BCAHousingReview, []guardCase{
		{
			name:        "both rows present",
			snap:        Snapshot{Clearances: clearances("BCA", "PENDING", "HOUSING", "PENDING")},
			wantAllowed: true,
		},
		{
			name:        "housing missing",
			snap:        Snapshot{Clearances: clearances("BCA", "PENDING")},
			wantAllowed: false,
			wantReason:  "clearances not opened for HOUSING",
		},
	})
}

func TestSectionGuards(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		runGuardCases(t, SectionClear(workflow.SectionBCA), []guardCase{
			{name: "clear", snap: Snapshot{Clearances: clearances("BCA", "CLEAR")}, wantAllowed: true},
			{name: "pending", snap: Snapshot{Clearances: clearances("BCA", "PENDING")}, wantReason: "BCA clearance is not clear (status: PENDING)"},
			{name: "other section clear", snap: Snapshot{Clearances: clearances("HOUSING", "CLEAR")}, wantReason: "BCA clearance is not clear (status: none)"},
		})
	})

	t.Run("objection", func(t *testing.T) {
		runGuardCases(t, SectionObjection(workflow.SectionHousing), []guardCase{
			{name: "housing with objection", snap: Snapshot{ActorRole: workflow.RoleHousing, Clearances: clearances("HOUSING", "OBJECTION")}, wantAllowed: true},
			{name: "bca cannot hold for housing", snap: Snapshot{ActorRole: workflow.RoleBCA, Clearances: clearances("HOUSING", "OBJECTION")}, wantReason: "only HOUSING can hold a case for a HOUSING objection (actor role: BCA)"},
			{name: "no objection", snap: Snapshot{ActorRole: workflow.RoleHousing, Clearances: clearances("HOUSING", "PENDING")}, wantReason: "HOUSING clearance has no objection (status: PENDING)"},
		})
	})

	t.Run("resolved", func(t *testing.T) {
		runGuardCases(t, SectionResolved(workflow.SectionBCA), []guardCase{
			{name: "back to pending", snap: Snapshot{Clearances: clearances("BCA", "PENDING")}, wantAllowed: true},
			{name: "cleared", snap: Snapshot{Clearances: clearances("BCA", "CLEAR")}, wantAllowed: true},
			{name: "still open", snap: Snapshot{Clearances: clearances("BCA", "OBJECTION")}, wantReason: "BCA objection is still open"},
			{name: "no row", snap: Snapshot{}, wantReason: "no BCA clearance on record"},
		})
	})
}

func TestClearancesComplete(t *testing.T) {
	runGuardCases(t, ClearancesComplete, []guardCase{
		{name: "both clear", snap: Snapshot{Clearances: clearances("BCA", "CLEAR", "HOUSING", "CLEAR")}, wantAllowed: true},
		{name: "housing pending", snap: Snapshot{Clearances: clearances("BCA", "CLEAR", "HOUSING", "PENDING")}, wantReason: "clearances pending for HOUSING"},
		{name: "nothing", snap: Snapshot{}, wantReason: "clearances pending for BCA, HOUSING"},
	})
}

func TestSentToAccountsProvisioning(t *testing.T) {
	s := Snapshot{CaseID: "APP-0001", Clearances: clearances("BCA", "CLEAR", "HOUSING", "CLEAR")}
	if r := SentToAccounts(s); !r.Allowed {
		t.Fatalf("expected allow, got %q", r.Reason)
	}
	effs := ProvisionAccounts(s)
	want := []effects.Effect{
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.ProvisionClearanceEffect{CaseID: "APP-0001", Section: workflow.SectionAccounts, Status: workflow.ClearancePending},
			effects.ProvisionAccountsEffect{CaseID: "APP-0001", Status: workflow.AccountsPending},
		}},
		effects.LogEffect{
			Level:   "info",
			Message: "accounts opened",
			Fields:  map[string]any{"case_id": "APP-0001", "opened": []string{"clearance", "breakdown"}},
		},
	}
	if !reflect.DeepEqual(effs, want) {
		t.Errorf("ProvisionAccounts = %#v, want %#v", effs, want)
	}

	s.Clearances = append(s.Clearances, ClearanceSummary{Section: workflow.SectionAccounts, Status: workflow.ClearancePending})
	s.Accounts = &AccountsSummary{Status: workflow.AccountsPending}
	if effs := ProvisionAccounts(s); len(effs) != 0 {
		t.Errorf("expected no effects once provisioned, got %d", len(effs))
	}

	blocked := Snapshot{Clearances: clearances("BCA", "CLEAR")}
	if r := SentToAccounts(blocked); r.Allowed || r.Reason != "clearances pending for HOUSING" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestAccountsGuards(t *testing.T) {
	calculated := &AccountsSummary{TotalAmount: 17000, Status: workflow.AccountsAwaitingPayment}
	paid := &AccountsSummary{TotalAmount: 17000, PaidAmount: 17000, PaymentVerified: true}
	short := &AccountsSummary{TotalAmount: 17000, PaidAmount: 10000}

	t.Run("calculated", func(t *testing.T) {
		runGuardCases(t, AccountsCalculated, []guardCase{
			{name: "positive total", snap: Snapshot{Accounts: calculated}, wantAllowed: true},
			{name: "empty breakdown", snap: Snapshot{Accounts: &AccountsSummary{}}, wantReason: "accounts breakdown has not been calculated"},
			{name: "no breakdown", snap: Snapshot{}, wantReason: "accounts breakdown has not been calculated"},
		})
	})

	t.Run("payment verified", func(t *testing.T) {
		runGuardCases(t, PaymentVerified, []guardCase{
			{name: "paid in full", snap: Snapshot{Accounts: paid}, wantAllowed: true},
			{name: "short paid", snap: Snapshot{Accounts: short}, wantReason: "payment incomplete: 10000 of 17000 paid"},
			{name: "no breakdown", snap: Snapshot{}, wantReason: "accounts breakdown has not been calculated"},
		})

		r := PaymentVerified(Snapshot{Accounts: short})
		if r.Metadata["remainingAmount"] != int64(7000) {
			t.Errorf("remainingAmount = %v, want 7000", r.Metadata["remainingAmount"])
		}
	})

	t.Run("accounts clear", func(t *testing.T) {
		runGuardCases(t, AccountsClear, []guardCase{
			{name: "verified and clear", snap: Snapshot{Accounts: paid, Clearances: clearances("ACCOUNTS", "CLEAR")}, wantAllowed: true},
			{name: "verified but pending", snap: Snapshot{Accounts: paid, Clearances: clearances("ACCOUNTS", "PENDING")}, wantReason: "ACCOUNTS clearance is not clear (status: PENDING)"},
			{name: "clear but unverified", snap: Snapshot{Accounts: short, Clearances: clearances("ACCOUNTS", "CLEAR")}, wantReason: "payment has not been verified"},
		})
	})

	t.Run("reviewed", func(t *testing.T) {
		onHold := &AccountsSummary{TotalAmount: 17000, Status: workflow.AccountsOnHold, ObjectionReason: "challan mismatch"}
		runGuardCases(t, AccountsReviewed, []guardCase{
			{name: "accounts with hold", snap: Snapshot{ActorRole: workflow.RoleAccounts, Accounts: onHold}, wantAllowed: true},
			{name: "owo cannot hold", snap: Snapshot{ActorRole: workflow.RoleOWO, Accounts: onHold}, wantReason: "only ACCOUNTS can hold a case for an accounts objection (actor role: OWO)"},
			{name: "not on hold", snap: Snapshot{ActorRole: workflow.RoleAccounts, Accounts: calculated}, wantReason: "accounts are not on hold with an objection (status: AWAITING_PAYMENT)"},
		})
	})
}

func TestReviewGatedGuards(t *testing.T) {
	t.Run("owo review of clearances", func(t *testing.T) {
		runGuardCases(t, OWOReviewComplete, []guardCase{
			{name: "approved", snap: Snapshot{ActorRole: workflow.RoleOWO, Reviews: reviews("OWO_CLEARANCES", "APPROVED")}, wantAllowed: true},
			{name: "wrong section approved", snap: Snapshot{ActorRole: workflow.RoleOWO, Reviews: reviews("OWO", "APPROVED")}, wantReason: "OWO_CLEARANCES review is not approved (status: none)"},
		})
	})

	t.Run("owo review of accounts", func(t *testing.T) {
		runGuardCases(t, OWOAccountsReviewComplete, []guardCase{
			{name: "approved", snap: Snapshot{ActorRole: workflow.RoleOWO, Reviews: reviews("OWO_ACCOUNTS", "APPROVED")}, wantAllowed: true},
			{name: "accounts role refused", snap: Snapshot{ActorRole: workflow.RoleAccounts, Reviews: reviews("OWO_ACCOUNTS", "APPROVED")}, wantReason: "only OWO can review accounts (actor role: ACCOUNTS)"},
		})
	})

	t.Run("approval", func(t *testing.T) {
		runGuardCases(t, ApprovalComplete, []guardCase{
			{name: "approved", snap: Snapshot{ActorRole: workflow.RoleApprover, Reviews: reviews("APPROVAL", "APPROVED")}, wantAllowed: true},
			{name: "owo cannot approve", snap: Snapshot{ActorRole: workflow.RoleOWO, Reviews: reviews("APPROVAL", "APPROVED")}, wantReason: "only APPROVER can approve a transfer (actor role: OWO)"},
			{name: "rejected", snap: Snapshot{ActorRole: workflow.RoleApprover, Reviews: reviews("APPROVAL", "REJECTED")}, wantReason: "APPROVAL review is not approved (status: REJECTED)"},
		})
		runGuardCases(t, ApprovalRejected, []guardCase{
			{name: "rejected", snap: Snapshot{ActorRole: workflow.RoleApprover, Reviews: reviews("APPROVAL", "REJECTED")}, wantAllowed: true},
			{name: "approved", snap: Snapshot{ActorRole: workflow.RoleApprover, Reviews: reviews("APPROVAL", "APPROVED")}, wantReason: "APPROVAL review is not rejected (status: APPROVED)"},
		})
	})
}

func TestDeedFinalized(t *testing.T) {
	runGuardCases(t, DeedFinalized, []guardCase{
		{name: "finalized with hash", snap: Snapshot{Deed: &DeedSummary{IsFinalized: true, ContentHash: "ab12"}}, wantAllowed: true},
		{name: "draft", snap: Snapshot{Deed: &DeedSummary{}}, wantReason: "deed is not finalized"},
		{name: "finalized without hash", snap: Snapshot{Deed: &DeedSummary{IsFinalized: true}}, wantReason: "deed has no content hash"},
		{name: "no deed", snap: Snapshot{}, wantReason: "no deed drafted"},
	})
}

func TestDefinitionsCoverEveryEdge(t *testing.T) {
	defs := Definitions()
	if len(defs) != len(workflow.AllGuardNames()) {
		t.Errorf("Definitions has %d entries, want %d", len(defs), len(workflow.AllGuardNames()))
	}
	for _, e := range workflow.Edges() {
		d, ok := defs[e.Guard]
		if !ok {
			t.Errorf("edge %s -> %s names unregistered guard %s", e.From, e.To, e.Guard)
			continue
		}
		if d.Check == nil {
			t.Errorf("guard %s has no check", e.Guard)
		}
	}
	for name, d := range defs {
		if d.Name != name {
			t.Errorf("definition keyed %s is named %s", name, d.Name)
		}
	}
}

func TestResultError(t *testing.T) {
	if err := allow().Error(); err != nil {
		t.Errorf("allow().Error() = %v, want nil", err)
	}
	if err := deny("blocked", nil).Error(); err == nil || err.Error() != "blocked" {
		t.Errorf("deny().Error() = %v, want blocked", err)
	}
}
