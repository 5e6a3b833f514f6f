package cli

import (
	"context"
	"io"

	"github.com/example/landxfer/internal/ports/primary"
)

// mockCaseService implements primary.CaseService for testing
type mockCaseService struct {
	createCaseFn        func(ctx context.Context, req primary.CreateCaseRequest) (*primary.Case, error)
	getCaseFn           func(ctx context.Context, caseID string) (*primary.Case, error)
	listCasesFn         func(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error)
	listDocumentsFn     func(ctx context.Context, caseID string) ([]*primary.Document, error)
	transferOwnershipFn func(ctx context.Context, caseID string, actor primary.Actor) (*primary.Case, error)

	lastCreateReq primary.CreateCaseRequest
	lastFilters   primary.CaseFilters
	lastDocType   string
	lastActor     primary.Actor
}

func (m *mockCaseService) CreateCase(ctx context.Context, req primary.CreateCaseRequest) (*primary.Case, error) {
	m.lastCreateReq = req
	if m.createCaseFn != nil {
		return m.createCaseFn(ctx, req)
	}
	return &primary.Case{ID: "APP-0001", Stage: "SUBMITTED", ApplicantName: req.ApplicantName}, nil
}

func (m *mockCaseService) GetCase(ctx context.Context, caseID string) (*primary.Case, error) {
	if m.getCaseFn != nil {
		return m.getCaseFn(ctx, caseID)
	}
	return &primary.Case{ID: caseID, Stage: "SUBMITTED", StageName: "Submitted", Status: "active"}, nil
}

func (m *mockCaseService) ListCases(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
	m.lastFilters = filters
	if m.listCasesFn != nil {
		return m.listCasesFn(ctx, filters)
	}
	return []*primary.Case{}, nil
}

func (m *mockCaseService) RecordDocument(ctx context.Context, caseID, docType string, actor primary.Actor) (*primary.Document, error) {
	m.lastDocType = docType
	m.lastActor = actor
	return &primary.Document{CaseID: caseID, DocType: docType}, nil
}

func (m *mockCaseService) MarkOriginalSeen(ctx context.Context, caseID, docType string, actor primary.Actor) (*primary.Document, error) {
	m.lastDocType = docType
	m.lastActor = actor
	return &primary.Document{CaseID: caseID, DocType: docType, OriginalSeen: true, SeenBy: actor.ID}, nil
}

func (m *mockCaseService) ListDocuments(ctx context.Context, caseID string) ([]*primary.Document, error) {
	if m.listDocumentsFn != nil {
		return m.listDocumentsFn(ctx, caseID)
	}
	return []*primary.Document{}, nil
}

func (m *mockCaseService) TransferOwnership(ctx context.Context, caseID string, actor primary.Actor) (*primary.Case, error) {
	m.lastActor = actor
	if m.transferOwnershipFn != nil {
		return m.transferOwnershipFn(ctx, caseID, actor)
	}
	return &primary.Case{ID: caseID, PlotRef: "PLOT-1", OwnerRef: "BUYER-1"}, nil
}

// mockWorkflowService implements primary.WorkflowService for testing
type mockWorkflowService struct {
	requestFn   func(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error)
	checkFn     func(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionCheck, error)
	availableFn func(ctx context.Context, caseID string, actor primary.Actor) ([]*primary.TransitionCheck, error)

	lastReq primary.TransitionRequest
}

func (m *mockWorkflowService) RequestTransition(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error) {
	m.lastReq = req
	if m.requestFn != nil {
		return m.requestFn(ctx, req)
	}
	return &primary.TransitionResponse{
		Case:      &primary.Case{ID: req.CaseID, Stage: req.ToStage},
		FromStage: "SUBMITTED",
		ToStage:   req.ToStage,
		GuardName: "GUARD_INTAKE_COMPLETE",
	}, nil
}

func (m *mockWorkflowService) CheckTransition(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionCheck, error) {
	m.lastReq = req
	if m.checkFn != nil {
		return m.checkFn(ctx, req)
	}
	return &primary.TransitionCheck{CaseID: req.CaseID, FromStage: "SUBMITTED", ToStage: req.ToStage, Allowed: true}, nil
}

func (m *mockWorkflowService) AvailableTransitions(ctx context.Context, caseID string, actor primary.Actor) ([]*primary.TransitionCheck, error) {
	if m.availableFn != nil {
		return m.availableFn(ctx, caseID, actor)
	}
	return nil, nil
}

func (m *mockWorkflowService) AttemptAutoProgress(ctx context.Context, req primary.AutoProgressRequest) (*primary.TransitionResponse, error) {
	return nil, nil
}

// mockClearanceService implements primary.ClearanceService for testing
type mockClearanceService struct {
	recordFn func(ctx context.Context, req primary.RecordClearanceRequest) (*primary.Clearance, error)
	listFn   func(ctx context.Context, caseID string) ([]*primary.Clearance, error)

	lastRecordReq primary.RecordClearanceRequest
	lastRemarks   string
}

func (m *mockClearanceService) RecordClearance(ctx context.Context, req primary.RecordClearanceRequest) (*primary.Clearance, error) {
	m.lastRecordReq = req
	if m.recordFn != nil {
		return m.recordFn(ctx, req)
	}
	return &primary.Clearance{CaseID: req.CaseID, Section: req.Section, Status: req.Status}, nil
}

func (m *mockClearanceService) RaiseObjection(ctx context.Context, caseID, section, remarks string, actor primary.Actor) (*primary.Clearance, error) {
	m.lastRemarks = remarks
	return &primary.Clearance{CaseID: caseID, Section: section, Status: "OBJECTION", Remarks: remarks}, nil
}

func (m *mockClearanceService) ResolveObjection(ctx context.Context, caseID, section, remarks string, actor primary.Actor) (*primary.Clearance, error) {
	m.lastRemarks = remarks
	return &primary.Clearance{CaseID: caseID, Section: section, Status: "PENDING", Remarks: remarks}, nil
}

func (m *mockClearanceService) ListClearances(ctx context.Context, caseID string) ([]*primary.Clearance, error) {
	if m.listFn != nil {
		return m.listFn(ctx, caseID)
	}
	return []*primary.Clearance{}, nil
}

// mockReviewService implements primary.ReviewService for testing
type mockReviewService struct {
	listFn func(ctx context.Context, caseID string) ([]*primary.Review, error)

	lastSubmitReq primary.SubmitReviewRequest
}

func (m *mockReviewService) SubmitReview(ctx context.Context, req primary.SubmitReviewRequest) (*primary.Review, error) {
	m.lastSubmitReq = req
	return &primary.Review{CaseID: req.CaseID, Section: req.Section, Status: req.Status, ReviewerID: req.Actor.ID}, nil
}

func (m *mockReviewService) ListReviews(ctx context.Context, caseID string) ([]*primary.Review, error) {
	if m.listFn != nil {
		return m.listFn(ctx, caseID)
	}
	return []*primary.Review{}, nil
}

// mockAccountsService implements primary.AccountsService for testing
type mockAccountsService struct {
	calculateFn func(ctx context.Context, req primary.CalculateBreakdownRequest) (*primary.AccountsBreakdown, error)
	verifyFn    func(ctx context.Context, caseID string, paid int64, actor primary.Actor) (*primary.AccountsBreakdown, error)
	getFn       func(ctx context.Context, caseID string) (*primary.AccountsBreakdown, error)

	lastCalculateReq primary.CalculateBreakdownRequest
}

func (m *mockAccountsService) CalculateBreakdown(ctx context.Context, req primary.CalculateBreakdownRequest) (*primary.AccountsBreakdown, error) {
	m.lastCalculateReq = req
	if m.calculateFn != nil {
		return m.calculateFn(ctx, req)
	}
	return &primary.AccountsBreakdown{CaseID: req.CaseID}, nil
}

func (m *mockAccountsService) VerifyPayment(ctx context.Context, caseID string, paidAmount int64, actor primary.Actor) (*primary.AccountsBreakdown, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, caseID, paidAmount, actor)
	}
	return &primary.AccountsBreakdown{CaseID: caseID, PaidAmount: paidAmount}, nil
}

func (m *mockAccountsService) RaiseObjection(ctx context.Context, caseID, reason string, actor primary.Actor) (*primary.AccountsBreakdown, error) {
	return &primary.AccountsBreakdown{CaseID: caseID, Status: "ON_HOLD", ObjectionReason: reason}, nil
}

func (m *mockAccountsService) ResolveObjection(ctx context.Context, caseID string, actor primary.Actor) (*primary.AccountsBreakdown, error) {
	return &primary.AccountsBreakdown{CaseID: caseID, Status: "AWAITING_PAYMENT"}, nil
}

func (m *mockAccountsService) GetBreakdown(ctx context.Context, caseID string) (*primary.AccountsBreakdown, error) {
	if m.getFn != nil {
		return m.getFn(ctx, caseID)
	}
	return &primary.AccountsBreakdown{CaseID: caseID}, nil
}

// mockDeedService implements primary.DeedService for testing
type mockDeedService struct {
	finalizeFn func(ctx context.Context, caseID string, actor primary.Actor) (*primary.Deed, error)
	getFn      func(ctx context.Context, caseID string) (*primary.Deed, error)

	lastDraftReq primary.DraftDeedRequest
}

func (m *mockDeedService) DraftDeed(ctx context.Context, req primary.DraftDeedRequest) (*primary.Deed, error) {
	m.lastDraftReq = req
	return &primary.Deed{CaseID: req.CaseID, Witness1: req.Witness1, Witness2: req.Witness2}, nil
}

func (m *mockDeedService) FinalizeDeed(ctx context.Context, caseID string, actor primary.Actor) (*primary.Deed, error) {
	if m.finalizeFn != nil {
		return m.finalizeFn(ctx, caseID, actor)
	}
	return &primary.Deed{CaseID: caseID, IsFinalized: true, ContentHash: "abc123"}, nil
}

func (m *mockDeedService) GetDeed(ctx context.Context, caseID string) (*primary.Deed, error) {
	if m.getFn != nil {
		return m.getFn(ctx, caseID)
	}
	return &primary.Deed{CaseID: caseID}, nil
}

// mockAuditService implements primary.AuditService for testing
type mockAuditService struct {
	listFn   func(ctx context.Context, caseID string) ([]*primary.AuditEntry, error)
	exportFn func(ctx context.Context, caseID string, w io.Writer) error
}

func (m *mockAuditService) ListEntries(ctx context.Context, caseID string) ([]*primary.AuditEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, caseID)
	}
	return []*primary.AuditEntry{}, nil
}

func (m *mockAuditService) ExportXLSX(ctx context.Context, caseID string, w io.Writer) error {
	if m.exportFn != nil {
		return m.exportFn(ctx, caseID, w)
	}
	_, err := w.Write([]byte("PK"))
	return err
}
