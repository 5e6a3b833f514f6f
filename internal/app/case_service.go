package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/deed"
	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// CaseServiceImpl implements the CaseService interface.
type CaseServiceImpl struct {
	store  secondary.Store
	audit  *AuditWriter
	logger *zap.Logger
	now    func() time.Time
}

// NewCaseService creates a new CaseService with injected dependencies.
func NewCaseService(store secondary.Store, audit *AuditWriter, logger *zap.Logger) *CaseServiceImpl {
	return &CaseServiceImpl{
		store:  store,
		audit:  audit,
		logger: logging.OrNop(logger),
		now:    defaultNow,
	}
}

// CreateCase opens a new case at SUBMITTED with the seller as current owner.
func (s *CaseServiceImpl) CreateCase(ctx context.Context, req primary.CreateCaseRequest) (*primary.Case, error) {
	// 1. Guard check
	guardCtx := intake.CreateCaseContext{
		ApplicantName: req.ApplicantName,
		SellerRef:     req.SellerRef,
		BuyerRef:      req.BuyerRef,
		PlotRef:       req.PlotRef,
	}
	if result := intake.CanCreateCase(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	var created *secondary.CaseRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		// 2. Generate ID using core business rule
		nextID, err := tx.Cases().GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate case ID: %w", err)
		}

		// 3. Create case record at the initial stage
		initial := workflow.InitialStage()
		record := &secondary.CaseRecord{
			ID:             nextID,
			CurrentStageID: initial.ID,
			Status:         workflow.CaseStatusActive,
			ApplicantName:  req.ApplicantName,
			SellerRef:      req.SellerRef,
			BuyerRef:       req.BuyerRef,
			PlotRef:        req.PlotRef,
			OwnerRef:       req.SellerRef,
			CreatedAt:      s.now(),
		}
		if err := tx.Cases().Create(ctx, record); err != nil {
			return err
		}

		// 4. Audit
		created = record
		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID:    record.ID,
			Actor:     req.Actor,
			Action:    workflow.ActionCaseCreated,
			ToStageID: initial.ID,
			Detail:    map[string]any{"applicant": req.ApplicantName, "plot": req.PlotRef},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("case created", zap.String("case_id", created.ID), zap.String("actor_id", req.Actor.ID))
	return recordToCase(created), nil
}

// GetCase retrieves a case by ID.
func (s *CaseServiceImpl) GetCase(ctx context.Context, caseID string) (*primary.Case, error) {
	record, err := s.store.Cases().GetByID(ctx, caseID)
	if err != nil {
		return nil, loadCaseErr(caseID, err)
	}
	return recordToCase(record), nil
}

// ListCases lists cases with optional filters.
func (s *CaseServiceImpl) ListCases(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
	repoFilters := secondary.CaseFilters{Status: filters.Status, Limit: filters.Limit}
	if filters.Stage != "" {
		stage, ok := workflow.ParseStageRef(filters.Stage)
		if !ok {
			return nil, workflow.NewError(workflow.CodeStageNotFound, "stage %q not found", filters.Stage)
		}
		repoFilters.StageID = stage.ID
	}

	records, err := s.store.Cases().List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	cases := make([]*primary.Case, len(records))
	for i, r := range records {
		cases[i] = recordToCase(r)
	}
	return cases, nil
}

// RecordDocument records a submitted document. Recording a type twice returns
// the existing row.
func (s *CaseServiceImpl) RecordDocument(ctx context.Context, caseID, docType string, actor primary.Actor) (*primary.Document, error) {
	docType = intake.NormalizeDocumentType(docType)

	var doc *secondary.DocumentRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		guardCtx := intake.RecordDocumentContext{
			CaseID:    caseID,
			DocType:   docType,
			CaseStage: stageCode(record.CurrentStageID),
		}
		if result := intake.CanRecordDocument(guardCtx); !result.Allowed {
			return result.Error()
		}

		existing, err := tx.Documents().GetByType(ctx, caseID, docType)
		if err == nil {
			doc = existing
			return nil
		}
		if !errors.Is(err, secondary.ErrNotFound) {
			return err
		}

		doc = &secondary.DocumentRecord{
			ID:        uuid.NewString(),
			CaseID:    caseID,
			DocType:   docType,
			CreatedAt: s.now(),
		}
		if err := tx.Documents().Create(ctx, doc); err != nil {
			return err
		}

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionDocumentRecorded,
			Detail: map[string]any{"docType": docType},
		})
	})
	if err != nil {
		return nil, err
	}
	return recordToDocument(doc), nil
}

// MarkOriginalSeen flags that the original of a recorded document was inspected.
func (s *CaseServiceImpl) MarkOriginalSeen(ctx context.Context, caseID, docType string, actor primary.Actor) (*primary.Document, error) {
	docType = intake.NormalizeDocumentType(docType)

	var doc *secondary.DocumentRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		guardCtx := intake.RecordDocumentContext{
			CaseID:    caseID,
			DocType:   docType,
			CaseStage: stageCode(record.CurrentStageID),
		}
		if result := intake.CanRecordDocument(guardCtx); !result.Allowed {
			return result.Error()
		}

		existing, err := tx.Documents().GetByType(ctx, caseID, docType)
		if errors.Is(err, secondary.ErrNotFound) {
			return fmt.Errorf("document %s has not been recorded for case %s", docType, caseID)
		}
		if err != nil {
			return err
		}
		if existing.OriginalSeen {
			doc = existing
			return nil
		}

		at := s.now()
		if err := tx.Documents().MarkOriginalSeen(ctx, existing.ID, actor.ID, at); err != nil {
			return err
		}
		existing.OriginalSeen = true
		existing.SeenBy = actor.ID
		existing.SeenAt = at
		doc = existing

		return s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionDocumentVerified,
			Detail: map[string]any{"docType": docType},
		})
	})
	if err != nil {
		return nil, err
	}
	return recordToDocument(doc), nil
}

// ListDocuments lists the documents recorded for a case.
func (s *CaseServiceImpl) ListDocuments(ctx context.Context, caseID string) ([]*primary.Document, error) {
	if _, err := s.store.Cases().GetByID(ctx, caseID); err != nil {
		return nil, loadCaseErr(caseID, err)
	}

	records, err := s.store.Documents().ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*primary.Document, len(records))
	for i, r := range records {
		docs[i] = recordToDocument(r)
	}
	return docs, nil
}

// TransferOwnership switches the plot owner to the buyer once the deed is
// finalized and the case is in post entries.
func (s *CaseServiceImpl) TransferOwnership(ctx context.Context, caseID string, actor primary.Actor) (*primary.Case, error) {
	var updated *secondary.CaseRecord
	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		record, err := tx.Cases().GetForUpdate(ctx, caseID)
		if err != nil {
			return loadCaseErr(caseID, err)
		}

		finalized := false
		d, err := tx.Deeds().GetByCase(ctx, caseID)
		switch {
		case errors.Is(err, secondary.ErrNotFound):
		case err != nil:
			return err
		default:
			finalized = d.IsFinalized
		}

		guardCtx := deed.TransferOwnershipContext{
			CaseID:        caseID,
			CaseStage:     stageCode(record.CurrentStageID),
			DeedFinalized: finalized,
			OwnerRef:      record.OwnerRef,
			BuyerRef:      record.BuyerRef,
		}
		if result := deed.CanTransferOwnership(guardCtx); !result.Allowed {
			return result.Error()
		}

		if err := tx.Cases().UpdateOwner(ctx, caseID, record.BuyerRef, s.now()); err != nil {
			return err
		}

		if err := s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID: caseID,
			Actor:  actor,
			Action: workflow.ActionOwnershipTransferred,
			Detail: map[string]any{"from": record.OwnerRef, "to": record.BuyerRef},
		}); err != nil {
			return err
		}

		updated, err = tx.Cases().GetByID(ctx, caseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recordToCase(updated), nil
}

var _ primary.CaseService = (*CaseServiceImpl)(nil)
