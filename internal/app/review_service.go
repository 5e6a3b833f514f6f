package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/review"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// ReviewServiceImpl implements the ReviewService interface.
type ReviewServiceImpl struct {
	store    secondary.Store
	workflow primary.WorkflowService
	audit    *AuditWriter
	logger   *zap.Logger
	now      func() time.Time
}

// NewReviewService creates a new ReviewService with injected dependencies.
func NewReviewService(store secondary.Store, workflowService primary.WorkflowService, audit *AuditWriter, logger *zap.Logger) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		store:    store,
		workflow: workflowService,
		audit:    audit,
		logger:   logging.OrNop(logger),
		now:      defaultNow,
	}
}

// SubmitReview records a reviewer's verdict, replacing any earlier verdict for
// the same section. An approval may move the case one stage forward.
func (s *ReviewServiceImpl) SubmitReview(ctx context.Context, req primary.SubmitReviewRequest) (*primary.Review, error) {
	section, ok := workflow.ParseReviewSection(req.Section)
	if !ok {
		return nil, fmt.Errorf("unknown review section %q", req.Section)
	}
	status, ok := workflow.ParseReviewStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("unknown review status %q", req.Status)
	}

	guardCtx := review.SubmitContext{
		CaseID:    req.CaseID,
		Section:   section,
		Status:    status,
		ActorRole: workflow.Role(strings.ToUpper(req.Actor.Role)),
		Remarks:   strings.TrimSpace(req.Remarks),
	}
	if result := review.CanSubmitReview(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	var out *secondary.ReviewRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, req.CaseID)
		if err != nil {
			return loadCaseErr(req.CaseID, err)
		}

		at := s.now()
		out = &secondary.ReviewRecord{
			ID:         uuid.NewString(),
			CaseID:     req.CaseID,
			Section:    string(section),
			ReviewerID: req.Actor.ID,
			Status:     string(status),
			Remarks:    req.Remarks,
			ReviewedAt: at,
			CreatedAt:  at,
			UpdatedAt:  at,
		}
		if err := tx.Reviews().Upsert(ctx, out); err != nil {
			return err
		}

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: req.CaseID,
			Actor:  req.Actor,
			Action: workflow.ActionReviewRecorded,
			Detail: map[string]any{
				"stage":   stageCode(record.CurrentStageID),
				"section": string(section),
				"status":  string(status),
				"remarks": req.Remarks,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	if status == workflow.ReviewApproved {
		autoProgress(ctx, s.workflow, s.logger, req.CaseID, workflow.TriggerReviewApproved, req.Actor)
	}

	return recordToReview(out), nil
}

// ListReviews lists a case's reviews.
func (s *ReviewServiceImpl) ListReviews(ctx context.Context, caseID string) ([]*primary.Review, error) {
	if _, err := s.store.Cases().GetByID(ctx, caseID); err != nil {
		return nil, loadCaseErr(caseID, err)
	}

	records, err := s.store.Reviews().ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	out := make([]*primary.Review, len(records))
	for i, r := range records {
		out[i] = recordToReview(r)
	}
	return out, nil
}

// autoProgress fires a trigger after a domain write has committed. Failures
// are logged; the write itself stands.
func autoProgress(ctx context.Context, wf primary.WorkflowService, logger *zap.Logger, caseID string, trigger workflow.Trigger, actor primary.Actor) {
	if wf == nil {
		return
	}
	resp, err := wf.AttemptAutoProgress(ctx, primary.AutoProgressRequest{
		CaseID:  caseID,
		Trigger: string(trigger),
		Actor:   actor,
	})
	if err != nil {
		logger.Warn("auto-progression failed",
			zap.String("case_id", caseID),
			zap.String("trigger", string(trigger)),
			zap.Error(err))
		return
	}
	if resp != nil {
		logger.Info("case auto-progressed",
			zap.String("case_id", caseID),
			zap.String("trigger", string(trigger)),
			zap.String("to", resp.ToStage))
	}
}

var _ primary.ReviewService = (*ReviewServiceImpl)(nil)
