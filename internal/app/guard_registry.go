package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/effects"
	"github.com/example/landxfer/internal/core/guards"
	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/secondary"
)

// GuardContext is the input to a guard invocation.
type GuardContext struct {
	CaseID      string
	ActorID     string
	ActorRole   workflow.Role
	FromStageID int
	ToStageID   int
	Extra       map[string]any
}

// GuardVerdict is the outcome of a guard invocation. Code is set on denials
// that did not come from the guard's own rules (unknown guard, failure).
type GuardVerdict struct {
	Allowed  bool
	Reason   string
	Metadata map[string]any
	Code     workflow.Code
	Effects  []effects.Effect
}

// GuardRegistry resolves guard names to definitions and runs them against
// records loaded from the caller's repositories.
type GuardRegistry struct {
	defs   map[workflow.GuardName]guards.Definition
	logger *zap.Logger
}

// NewGuardRegistry builds a registry and verifies that every edge's guard has
// a definition.
func NewGuardRegistry(defs map[workflow.GuardName]guards.Definition, edges []workflow.Edge, logger *zap.Logger) (*GuardRegistry, error) {
	missing := map[string]bool{}
	for _, e := range edges {
		def, ok := defs[e.Guard]
		if !ok || def.Check == nil {
			missing[string(e.Guard)] = true
		}
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for n := range missing {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("no guard registered for: %s", strings.Join(names, ", "))
	}

	return &GuardRegistry{defs: defs, logger: logging.OrNop(logger)}, nil
}

// Has reports whether name is registered.
func (r *GuardRegistry) Has(name workflow.GuardName) bool {
	_, ok := r.defs[name]
	return ok
}

// Invoke runs the named guard. Denials are verdicts, not errors; an error is
// returned only when ctx is done. Effects are planned only when provision is
// true and the guard allows.
func (r *GuardRegistry) Invoke(ctx context.Context, repos secondary.Repositories, name workflow.GuardName, gctx GuardContext, provision bool) (GuardVerdict, error) {
	def, ok := r.defs[name]
	if !ok {
		r.logger.Warn("unknown guard",
			zap.String("guard", string(name)),
			zap.String("case_id", gctx.CaseID))
		return GuardVerdict{Reason: "unknown guard", Code: workflow.CodeUnknownGuard}, nil
	}

	snap := guards.Snapshot{
		CaseID:    gctx.CaseID,
		ActorID:   gctx.ActorID,
		ActorRole: gctx.ActorRole,
		From:      workflow.StageCode(stageCode(gctx.FromStageID)),
		To:        workflow.StageCode(stageCode(gctx.ToStageID)),
		Extra:     gctx.Extra,
	}
	if err := loadSnapshot(ctx, repos, def.Needs, &snap); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return GuardVerdict{}, ctxErr
		}
		return r.failed(name, gctx, err), nil
	}

	result, effs, err := run(def, snap, provision)
	if err != nil {
		return r.failed(name, gctx, err), nil
	}

	verdict := GuardVerdict{
		Allowed:  result.Allowed,
		Reason:   result.Reason,
		Metadata: result.Metadata,
	}
	if result.Allowed {
		verdict.Effects = effs
	}
	return verdict, nil
}

func (r *GuardRegistry) failed(name workflow.GuardName, gctx GuardContext, err error) GuardVerdict {
	r.logger.Warn("guard execution failed",
		zap.String("guard", string(name)),
		zap.String("case_id", gctx.CaseID),
		zap.Error(err))
	return GuardVerdict{Reason: "guard execution failed", Code: workflow.CodeGuardExecutionFailed}
}

// run evaluates the predicate and, on allow, the provisioning plan. A panic
// in either is turned into an error.
func run(def guards.Definition, snap guards.Snapshot, provision bool) (result guards.Result, effs []effects.Effect, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("guard %s panicked: %v", def.Name, p)
		}
	}()

	result = def.Check(snap)
	if result.Allowed && provision && def.Provision != nil {
		effs = def.Provision(snap)
	}
	return result, effs, nil
}

// loadSnapshot reads only the record kinds the guard declared.
func loadSnapshot(ctx context.Context, repos secondary.Repositories, needs guards.Need, snap *guards.Snapshot) error {
	if needs.Has(guards.NeedDocuments) {
		docs, err := repos.Documents().ListByCase(ctx, snap.CaseID)
		if err != nil {
			return err
		}
		for _, d := range docs {
			snap.Documents = append(snap.Documents, intake.DocumentStatus{DocType: d.DocType, OriginalSeen: d.OriginalSeen})
		}
	}

	if needs.Has(guards.NeedClearances) {
		clearances, err := repos.Clearances().ListByCase(ctx, snap.CaseID)
		if err != nil {
			return err
		}
		for _, c := range clearances {
			snap.Clearances = append(snap.Clearances, guards.ClearanceSummary{
				Section: workflow.Section(c.Section),
				Status:  workflow.ClearanceStatus(c.Status),
			})
		}
	}

	if needs.Has(guards.NeedReviews) {
		reviews, err := repos.Reviews().ListByCase(ctx, snap.CaseID)
		if err != nil {
			return err
		}
		for _, rv := range reviews {
			snap.Reviews = append(snap.Reviews, guards.ReviewSummary{
				Section: workflow.ReviewSection(rv.Section),
				Status:  workflow.ReviewStatus(rv.Status),
			})
		}
	}

	if needs.Has(guards.NeedAccounts) {
		a, err := repos.Accounts().GetByCase(ctx, snap.CaseID)
		switch {
		case errors.Is(err, secondary.ErrNotFound):
		case err != nil:
			return err
		default:
			snap.Accounts = &guards.AccountsSummary{
				TotalAmount:     a.TotalAmount,
				PaidAmount:      a.PaidAmount,
				PaymentVerified: a.PaymentVerified,
				Status:          workflow.AccountsStatus(a.Status),
				ObjectionReason: a.ObjectionReason,
			}
		}
	}

	if needs.Has(guards.NeedDeed) {
		d, err := repos.Deeds().GetByCase(ctx, snap.CaseID)
		switch {
		case errors.Is(err, secondary.ErrNotFound):
		case err != nil:
			return err
		default:
			snap.Deed = &guards.DeedSummary{IsFinalized: d.IsFinalized, ContentHash: d.ContentHash}
		}
	}

	return nil
}
