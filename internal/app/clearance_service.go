package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/clearance"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// ClearanceServiceImpl implements the ClearanceService interface.
type ClearanceServiceImpl struct {
	store  secondary.Store
	audit  *AuditWriter
	logger *zap.Logger
	now    func() time.Time
}

// NewClearanceService creates a new ClearanceService with injected dependencies.
func NewClearanceService(store secondary.Store, audit *AuditWriter, logger *zap.Logger) *ClearanceServiceImpl {
	return &ClearanceServiceImpl{
		store:  store,
		audit:  audit,
		logger: logging.OrNop(logger),
		now:    defaultNow,
	}
}

func parseClearanceInput(section, status string) (workflow.Section, workflow.ClearanceStatus, error) {
	sec, ok := workflow.ParseSection(section)
	if !ok {
		return "", "", fmt.Errorf("unknown section %q", section)
	}
	if status == "" {
		return sec, "", nil
	}
	st, ok := workflow.ParseClearanceStatus(status)
	if !ok {
		return "", "", fmt.Errorf("unknown clearance status %q", status)
	}
	return sec, st, nil
}

// RecordClearance creates the section's clearance or updates the live row.
func (s *ClearanceServiceImpl) RecordClearance(ctx context.Context, req primary.RecordClearanceRequest) (*primary.Clearance, error) {
	section, status, err := parseClearanceInput(req.Section, req.Status)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return nil, fmt.Errorf("clearance status is required")
	}
	action := workflow.ActionClearanceUpdated
	if status == workflow.ClearanceObjection {
		action = workflow.ActionObjectionRaised
	}
	return s.write(ctx, req.CaseID, section, status, req.Remarks, req.Actor, action)
}

// RaiseObjection puts a section's clearance into OBJECTION.
func (s *ClearanceServiceImpl) RaiseObjection(ctx context.Context, caseID, section, remarks string, actor primary.Actor) (*primary.Clearance, error) {
	sec, _, err := parseClearanceInput(section, "")
	if err != nil {
		return nil, err
	}
	return s.write(ctx, caseID, sec, workflow.ClearanceObjection, remarks, actor, workflow.ActionObjectionRaised)
}

// write is the shared create-or-update path. A missing row is created with
// CLEARANCE_CREATED; an existing one is updated and audited with action.
func (s *ClearanceServiceImpl) write(ctx context.Context, caseID string, section workflow.Section, status workflow.ClearanceStatus, remarks string, actor primary.Actor, action workflow.Action) (*primary.Clearance, error) {
	var out *secondary.ClearanceRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		existing, err := tx.Clearances().GetBySection(ctx, caseID, string(section))
		if err != nil && !errors.Is(err, secondary.ErrNotFound) {
			return err
		}

		var current workflow.ClearanceStatus
		if existing != nil {
			current = workflow.ClearanceStatus(existing.Status)
		}

		guardCtx := clearance.RecordContext{
			CaseID:        caseID,
			Section:       section,
			ActorRole:     workflow.Role(strings.ToUpper(actor.Role)),
			CurrentStatus: current,
			NewStatus:     status,
			Remarks:       strings.TrimSpace(remarks),
		}
		if result := clearance.CanRecordClearance(guardCtx); !result.Allowed {
			return result.Error()
		}

		at := s.now()
		var clearedAt time.Time
		if status == workflow.ClearanceClear {
			clearedAt = at
		}

		if existing == nil {
			out = &secondary.ClearanceRecord{
				ID:        uuid.NewString(),
				CaseID:    caseID,
				Section:   string(section),
				Status:    string(status),
				Remarks:   remarks,
				UpdatedBy: actor.ID,
				ClearedAt: clearedAt,
				CreatedAt: at,
			}
			if err := tx.Clearances().Create(ctx, out); err != nil {
				return err
			}
			action = workflow.ActionClearanceCreated
		} else {
			existing.Status = string(status)
			existing.Remarks = remarks
			existing.UpdatedBy = actor.ID
			existing.ClearedAt = clearedAt
			existing.UpdatedAt = at
			if err := tx.Clearances().Update(ctx, existing); err != nil {
				return err
			}
			out = existing
		}

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: action,
			Detail: map[string]any{
				"stage":          stageCode(record.CurrentStageID),
				"section":        string(section),
				"status":         string(status),
				"previousStatus": string(current),
				"remarks":        remarks,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("clearance recorded",
		zap.String("case_id", caseID),
		zap.String("section", string(section)),
		zap.String("status", string(status)))
	return recordToClearance(out), nil
}

// ResolveObjection moves an OBJECTION clearance back to PENDING.
func (s *ClearanceServiceImpl) ResolveObjection(ctx context.Context, caseID, section, remarks string, actor primary.Actor) (*primary.Clearance, error) {
	sec, _, err := parseClearanceInput(section, "")
	if err != nil {
		return nil, err
	}

	var out *secondary.ClearanceRecord
	err = s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		existing, err := tx.Clearances().GetBySection(ctx, caseID, string(sec))
		if err != nil && !errors.Is(err, secondary.ErrNotFound) {
			return err
		}
		var current workflow.ClearanceStatus
		if existing != nil {
			current = workflow.ClearanceStatus(existing.Status)
		}

		guardCtx := clearance.RecordContext{
			CaseID:        caseID,
			Section:       sec,
			ActorRole:     workflow.Role(strings.ToUpper(actor.Role)),
			CurrentStatus: current,
			NewStatus:     workflow.ClearancePending,
			Remarks:       remarks,
		}
		if result := clearance.CanResolveObjection(guardCtx); !result.Allowed {
			return result.Error()
		}

		existing.Status = string(workflow.ClearancePending)
		if remarks != "" {
			existing.Remarks = remarks
		}
		existing.UpdatedBy = actor.ID
		existing.UpdatedAt = s.now()
		if err := tx.Clearances().Update(ctx, existing); err != nil {
			return err
		}
		out = existing

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionObjectionResolved,
			Detail: map[string]any{"stage": stageCode(record.CurrentStageID), "section": string(sec), "remarks": remarks},
		})
	})
	if err != nil {
		return nil, err
	}
	return recordToClearance(out), nil
}

// ListClearances lists a case's clearances.
func (s *ClearanceServiceImpl) ListClearances(ctx context.Context, caseID string) ([]*primary.Clearance, error) {
	if _, err := s.store.Cases().GetByID(ctx, caseID); err != nil {
		return nil, loadCaseErr(caseID, err)
	}

	records, err := s.store.Clearances().ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clearances: %w", err)
	}

	out := make([]*primary.Clearance, len(records))
	for i, r := range records {
		out[i] = recordToClearance(r)
	}
	return out, nil
}

var _ primary.ClearanceService = (*ClearanceServiceImpl)(nil)
