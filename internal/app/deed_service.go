package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/deed"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// DeedServiceImpl implements the DeedService interface.
type DeedServiceImpl struct {
	store    secondary.Store
	workflow primary.WorkflowService
	audit    *AuditWriter
	logger   *zap.Logger
	now      func() time.Time
}

// NewDeedService creates a new DeedService with injected dependencies.
func NewDeedService(store secondary.Store, workflowService primary.WorkflowService, audit *AuditWriter, logger *zap.Logger) *DeedServiceImpl {
	return &DeedServiceImpl{
		store:    store,
		workflow: workflowService,
		audit:    audit,
		logger:   logging.OrNop(logger),
		now:      defaultNow,
	}
}

func loadDeed(ctx context.Context, repo secondary.DeedRepository, caseID string) (*secondary.DeedRecord, error) {
	d, err := repo.GetByCase(ctx, caseID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	return d, err
}

// immutableErr rewords a storage-level immutability refusal for callers.
func immutableErr(caseID string, err error) error {
	if errors.Is(err, secondary.ErrImmutable) {
		return fmt.Errorf("deed for case %s is finalized and cannot be changed: %w", caseID, err)
	}
	return err
}

// DraftDeed creates the deed draft or replaces an unfinalized one.
func (s *DeedServiceImpl) DraftDeed(ctx context.Context, req primary.DraftDeedRequest) (*primary.Deed, error) {
	var out *secondary.DeedRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, req.CaseID)
		if err != nil {
			return loadCaseErr(req.CaseID, err)
		}

		existing, err := loadDeed(ctx, tx.Deeds(), req.CaseID)
		if err != nil {
			return err
		}

		// 1. Guard check
		guardCtx := deed.DraftContext{
			CaseID:      req.CaseID,
			CaseStage:   stageCode(record.CurrentStageID),
			DeedExists:  existing != nil,
			IsFinalized: existing != nil && existing.IsFinalized,
		}
		if result := deed.CanDraft(guardCtx); !result.Allowed {
			return result.Error()
		}

		// 2. Create or replace the draft
		at := s.now()
		d := existing
		if d == nil {
			d = &secondary.DeedRecord{ID: uuid.NewString(), CaseID: req.CaseID, CreatedAt: at}
		}
		d.Witness1 = strings.TrimSpace(req.Witness1)
		d.Witness2 = strings.TrimSpace(req.Witness2)
		d.Content = req.Content
		d.PhotoURL = req.PhotoURL
		d.SignatureURL = req.SignatureURL
		d.UpdatedAt = at

		if existing == nil {
			err = tx.Deeds().Create(ctx, d)
		} else {
			err = tx.Deeds().Update(ctx, d)
		}
		if err != nil {
			return immutableErr(req.CaseID, err)
		}
		out = d

		// 3. Audit
		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: req.CaseID,
			Actor:  req.Actor,
			Action: workflow.ActionDeedDrafted,
			Detail: map[string]any{
				"stage":    stageCode(record.CurrentStageID),
				"witness1": d.Witness1,
				"witness2": d.Witness2,
				"redraft":  existing != nil,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return recordToDeed(out), nil
}

// FinalizeDeed freezes the deed and stamps the hash of its content and
// witnesses. A finalized deed is never written again.
func (s *DeedServiceImpl) FinalizeDeed(ctx context.Context, caseID string, actor primary.Actor) (*primary.Deed, error) {
	var out *secondary.DeedRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		d, err := loadDeed(ctx, tx.Deeds(), caseID)
		if err != nil {
			return err
		}

		guardCtx := deed.FinalizeContext{
			CaseID:     caseID,
			CaseStage:  stageCode(record.CurrentStageID),
			DeedExists: d != nil,
		}
		if d != nil {
			guardCtx.IsFinalized = d.IsFinalized
			guardCtx.Witness1 = d.Witness1
			guardCtx.Witness2 = d.Witness2
			guardCtx.Content = d.Content
		}
		if result := deed.CanFinalize(guardCtx); !result.Allowed {
			return result.Error()
		}

		at := s.now()
		d.IsFinalized = true
		d.ContentHash = deed.ContentHash(d.Content, d.Witness1, d.Witness2)
		d.FinalizedBy = actor.ID
		d.FinalizedAt = at
		d.UpdatedAt = at
		if err := tx.Deeds().Update(ctx, d); err != nil {
			return immutableErr(caseID, err)
		}
		out = d

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionDeedFinalized,
			Detail: map[string]any{
				"stage":       stageCode(record.CurrentStageID),
				"contentHash": d.ContentHash,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("deed finalized",
		zap.String("case_id", caseID),
		zap.String("content_hash", out.ContentHash),
	)
	autoProgress(ctx, s.workflow, s.logger, caseID, workflow.TriggerDeedFinalized, actor)
	return recordToDeed(out), nil
}

// GetDeed retrieves a case's deed.
func (s *DeedServiceImpl) GetDeed(ctx context.Context, caseID string) (*primary.Deed, error) {
	if _, err := s.store.Cases().GetByID(ctx, caseID); err != nil {
		return nil, loadCaseErr(caseID, err)
	}
	d, err := s.store.Deeds().GetByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deed: %w", err)
	}
	return recordToDeed(d), nil
}

var _ primary.DeedService = (*DeedServiceImpl)(nil)
