package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/accounts"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// AccountsServiceImpl implements the AccountsService interface.
type AccountsServiceImpl struct {
	store    secondary.Store
	workflow primary.WorkflowService
	audit    *AuditWriter
	logger   *zap.Logger
	now      func() time.Time
}

// NewAccountsService creates a new AccountsService with injected dependencies.
func NewAccountsService(store secondary.Store, workflowService primary.WorkflowService, audit *AuditWriter, logger *zap.Logger) *AccountsServiceImpl {
	return &AccountsServiceImpl{
		store:    store,
		workflow: workflowService,
		audit:    audit,
		logger:   logging.OrNop(logger),
		now:      defaultNow,
	}
}

func toCoreFees(f primary.FeeHeads) accounts.FeeHeads {
	return accounts.FeeHeads{
		TransferFee:        f.TransferFee,
		StampDuty:          f.StampDuty,
		RegistrationFee:    f.RegistrationFee,
		MutationFee:        f.MutationFee,
		ProcessingFee:      f.ProcessingFee,
		DevelopmentCharges: f.DevelopmentCharges,
		Arrears:            f.Arrears,
		Penalty:            f.Penalty,
	}
}

// loadBreakdown returns the case's breakdown, or nil when none exists.
func loadBreakdown(ctx context.Context, repo secondary.AccountsRepository, caseID string) (*secondary.AccountsRecord, error) {
	a, err := repo.GetByCase(ctx, caseID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// CalculateBreakdown sets the fee heads and recomputes totals.
func (s *AccountsServiceImpl) CalculateBreakdown(ctx context.Context, req primary.CalculateBreakdownRequest) (*primary.AccountsBreakdown, error) {
	fees := toCoreFees(req.Fees)

	var out *secondary.AccountsRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, req.CaseID)
		if err != nil {
			return loadCaseErr(req.CaseID, err)
		}

		existing, err := loadBreakdown(ctx, tx.Accounts(), req.CaseID)
		if err != nil {
			return err
		}

		guardCtx := accounts.CalculateContext{
			CaseID:          req.CaseID,
			ActorRole:       strings.ToUpper(req.Actor.Role),
			Fees:            fees,
			PaymentVerified: existing != nil && existing.PaymentVerified,
		}
		if result := accounts.CanCalculate(guardCtx); !result.Allowed {
			return result.Error()
		}

		at := s.now()
		a := existing
		if a == nil {
			a = &secondary.AccountsRecord{ID: uuid.NewString(), CaseID: req.CaseID, CreatedAt: at}
		}
		a.TransferFee = fees.TransferFee
		a.StampDuty = fees.StampDuty
		a.RegistrationFee = fees.RegistrationFee
		a.MutationFee = fees.MutationFee
		a.ProcessingFee = fees.ProcessingFee
		a.DevelopmentCharges = fees.DevelopmentCharges
		a.Arrears = fees.Arrears
		a.Penalty = fees.Penalty
		a.TotalAmount = fees.Total()
		a.RemainingAmount = accounts.ApplyPayment(a.TotalAmount, a.PaidAmount).Remaining
		a.Status = string(workflow.AccountsAwaitingPayment)
		a.CalculatedBy = req.Actor.ID
		a.UpdatedAt = at

		if existing == nil {
			err = tx.Accounts().Create(ctx, a)
		} else {
			err = tx.Accounts().Update(ctx, a)
		}
		if err != nil {
			return err
		}
		out = a

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: req.CaseID,
			Actor:  req.Actor,
			Action: workflow.ActionAccountsCalculated,
			Detail: map[string]any{
				"stage":           stageCode(record.CurrentStageID),
				"totalAmount":     a.TotalAmount,
				"remainingAmount": a.RemainingAmount,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	autoProgress(ctx, s.workflow, s.logger, req.CaseID, workflow.TriggerAccountsCalculated, req.Actor)
	return recordToBreakdown(out), nil
}

// VerifyPayment records the amount paid. A payment covering the total marks
// the breakdown verified and clears the ACCOUNTS section.
func (s *AccountsServiceImpl) VerifyPayment(ctx context.Context, caseID string, paidAmount int64, actor primary.Actor) (*primary.AccountsBreakdown, error) {
	var out *secondary.AccountsRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		a, err := loadBreakdown(ctx, tx.Accounts(), caseID)
		if err != nil {
			return err
		}

		guardCtx := accounts.VerifyPaymentContext{
			CaseID:          caseID,
			ActorRole:       strings.ToUpper(actor.Role),
			BreakdownExists: a != nil,
			PaidAmount:      paidAmount,
		}
		if a != nil {
			guardCtx.TotalAmount = a.TotalAmount
		}
		if result := accounts.CanVerifyPayment(guardCtx); !result.Allowed {
			return result.Error()
		}

		at := s.now()
		outcome := accounts.ApplyPayment(a.TotalAmount, paidAmount)
		a.PaidAmount = outcome.Paid
		a.RemainingAmount = outcome.Remaining
		a.PaymentVerified = outcome.Verified
		a.UpdatedAt = at
		if outcome.Verified {
			a.VerifiedBy = actor.ID
		}
		if err := tx.Accounts().Update(ctx, a); err != nil {
			return err
		}
		out = a

		if outcome.Verified {
			if err := s.clearAccountsSection(ctx, tx, caseID, actor, at); err != nil {
				return err
			}
		}

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionPaymentVerified,
			Detail: map[string]any{
				"stage":           stageCode(record.CurrentStageID),
				"totalAmount":     a.TotalAmount,
				"paidAmount":      a.PaidAmount,
				"remainingAmount": a.RemainingAmount,
				"paymentVerified": a.PaymentVerified,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	autoProgress(ctx, s.workflow, s.logger, caseID, workflow.TriggerPaymentVerified, actor)
	return recordToBreakdown(out), nil
}

// clearAccountsSection sets the live ACCOUNTS clearance to CLEAR, creating it
// only when the case has none.
func (s *AccountsServiceImpl) clearAccountsSection(ctx context.Context, tx secondary.Repositories, caseID string, actor primary.Actor, at time.Time) error {
	existing, err := tx.Clearances().GetBySection(ctx, caseID, string(workflow.SectionAccounts))
	switch {
	case errors.Is(err, secondary.ErrNotFound):
		c := &secondary.ClearanceRecord{
			ID:        uuid.NewString(),
			CaseID:    caseID,
			Section:   string(workflow.SectionAccounts),
			Status:    string(workflow.ClearanceClear),
			Remarks:   "payment verified",
			UpdatedBy: actor.ID,
			ClearedAt: at,
			CreatedAt: at,
			UpdatedAt: at,
		}
		if err := tx.Clearances().Create(ctx, c); err != nil {
			return err
		}
		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionClearanceCreated,
			Detail: map[string]any{"section": c.Section, "status": c.Status},
		})
	case err != nil:
		return err
	}

	if existing.Status == string(workflow.ClearanceClear) {
		return nil
	}
	previous := existing.Status
	existing.Status = string(workflow.ClearanceClear)
	existing.Remarks = "payment verified"
	existing.UpdatedBy = actor.ID
	existing.ClearedAt = at
	existing.UpdatedAt = at
	if err := tx.Clearances().Update(ctx, existing); err != nil {
		return err
	}
	return s.audit.Append(ctx, tx.Audit(), auditEvent{
		CaseID: caseID,
		Actor:  actor,
		Action: workflow.ActionClearanceUpdated,
		Detail: map[string]any{"section": existing.Section, "status": existing.Status, "previousStatus": previous},
	})
}

// RaiseObjection puts the breakdown on hold with a reason.
func (s *AccountsServiceImpl) RaiseObjection(ctx context.Context, caseID, reason string, actor primary.Actor) (*primary.AccountsBreakdown, error) {
	return s.objection(ctx, caseID, reason, actor, true)
}

// ResolveObjection lifts a hold and returns the breakdown to awaiting payment.
func (s *AccountsServiceImpl) ResolveObjection(ctx context.Context, caseID string, actor primary.Actor) (*primary.AccountsBreakdown, error) {
	return s.objection(ctx, caseID, "", actor, false)
}

func (s *AccountsServiceImpl) objection(ctx context.Context, caseID, reason string, actor primary.Actor, raise bool) (*primary.AccountsBreakdown, error) {
	var out *secondary.AccountsRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		a, err := loadBreakdown(ctx, tx.Accounts(), caseID)
		if err != nil {
			return err
		}

		guardCtx := accounts.ObjectionContext{
			CaseID:          caseID,
			ActorRole:       strings.ToUpper(actor.Role),
			Reason:          reason,
			BreakdownExists: a != nil,
		}
		if a != nil {
			guardCtx.Status = a.Status
		}

		at := s.now()
		var action workflow.Action
		if raise {
			if result := accounts.CanRaiseObjection(guardCtx); !result.Allowed {
				return result.Error()
			}
			a.Status = string(workflow.AccountsOnHold)
			a.ObjectionReason = strings.TrimSpace(reason)
			a.ObjectionAt = at
			a.ResolvedAt = time.Time{}
			action = workflow.ActionAccountsObjectionRaised
		} else {
			if result := accounts.CanResolveObjection(guardCtx); !result.Allowed {
				return result.Error()
			}
			a.Status = string(workflow.AccountsAwaitingPayment)
			a.ResolvedAt = at
			action = workflow.ActionAccountsObjectionResolved
		}
		a.UpdatedAt = at
		if err := tx.Accounts().Update(ctx, a); err != nil {
			return err
		}
		out = a

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: action,
			Detail: map[string]any{
				"stage":           stageCode(record.CurrentStageID),
				"objectionReason": a.ObjectionReason,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return recordToBreakdown(out), nil
}

// GetBreakdown retrieves a case's breakdown.
func (s *AccountsServiceImpl) GetBreakdown(ctx context.Context, caseID string) (*primary.AccountsBreakdown, error) {
	if _, err := s.store.Cases().GetByID(ctx, caseID); err != nil {
		return nil, loadCaseErr(caseID, err)
	}
	a, err := s.store.Accounts().GetByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts breakdown: %w", err)
	}
	return recordToBreakdown(a), nil
}

var _ primary.AccountsService = (*AccountsServiceImpl)(nil)
