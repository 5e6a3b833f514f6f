package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/landxfer/internal/ports/primary"
)

var clerk = primary.Actor{ID: "clerk-01", Role: "CLERK"}

// ============================================================================
// Create Tests
// ============================================================================

func TestCaseAdapter_Create_Success(t *testing.T) {
	mock := &mockCaseService{}
	var buf bytes.Buffer
	adapter := NewCaseAdapter(mock, &buf)

	err := adapter.Create(context.Background(), primary.CreateCaseRequest{
		ApplicantName: "Ayesha Malik",
		SellerRef:     "SELLER-1",
		BuyerRef:      "BUYER-1",
		PlotRef:       "PLOT-1",
		Actor:         clerk,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastCreateReq.ApplicantName != "Ayesha Malik" {
		t.Errorf("expected applicant 'Ayesha Malik', got '%s'", mock.lastCreateReq.ApplicantName)
	}
	if !strings.Contains(buf.String(), "Created case APP-0001 at SUBMITTED") {
		t.Errorf("expected created message, got '%s'", buf.String())
	}
}

func TestCaseAdapter_Create_ServiceError(t *testing.T) {
	mock := &mockCaseService{
		createCaseFn: func(ctx context.Context, req primary.CreateCaseRequest) (*primary.Case, error) {
			return nil, errors.New("buyer reference is required")
		},
	}
	var buf bytes.Buffer
	adapter := NewCaseAdapter(mock, &buf)

	err := adapter.Create(context.Background(), primary.CreateCaseRequest{})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got '%s'", buf.String())
	}
}

// ============================================================================
// Show / List Tests
// ============================================================================

func TestCaseAdapter_Show(t *testing.T) {
	mock := &mockCaseService{
		getCaseFn: func(ctx context.Context, caseID string) (*primary.Case, error) {
			return &primary.Case{
				ID:            caseID,
				Stage:         "UNDER_SCRUTINY",
				StageName:     "Under Scrutiny",
				PreviousStage: "SUBMITTED",
				Status:        "active",
				PlotRef:       "PLOT-1",
				OwnerRef:      "SELLER-1",
				UpdatedAt:     time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCaseAdapter(mock, &buf)

	c, err := adapter.Show(context.Background(), "APP-0001")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.ID != "APP-0001" {
		t.Errorf("expected case APP-0001, got %s", c.ID)
	}
	output := buf.String()
	for _, want := range []string{"UNDER_SCRUTINY (Under Scrutiny)", "Previous:  SUBMITTED", "owner SELLER-1", "2026-03-01 09:30"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestCaseAdapter_Show_NotFound(t *testing.T) {
	mock := &mockCaseService{
		getCaseFn: func(ctx context.Context, caseID string) (*primary.Case, error) {
			return nil, errors.New("case APP-9999 not found")
		},
	}
	adapter := NewCaseAdapter(mock, &bytes.Buffer{})

	_, err := adapter.Show(context.Background(), "APP-9999")

	if err == nil || !strings.Contains(err.Error(), "failed to get case") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCaseAdapter_List(t *testing.T) {
	mock := &mockCaseService{
		listCasesFn: func(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
			return []*primary.Case{
				{ID: "APP-0001", Stage: "SUBMITTED", Status: "active", ApplicantName: "Ayesha Malik"},
				{ID: "APP-0002", Stage: "COMPLETED", Status: "closed", ApplicantName: "Bilal Ahmed"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCaseAdapter(mock, &buf)

	err := adapter.List(context.Background(), primary.CaseFilters{Status: "active"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastFilters.Status != "active" {
		t.Errorf("expected status filter 'active', got '%s'", mock.lastFilters.Status)
	}
	if !strings.Contains(buf.String(), "APP-0001") || !strings.Contains(buf.String(), "APP-0002") {
		t.Errorf("expected both cases listed, got '%s'", buf.String())
	}
}

func TestCaseAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCaseAdapter(&mockCaseService{}, &buf)

	if err := adapter.List(context.Background(), primary.CaseFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No cases found") {
		t.Errorf("expected 'No cases found', got '%s'", buf.String())
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestCaseAdapter_Documents(t *testing.T) {
	mock := &mockCaseService{
		listDocumentsFn: func(ctx context.Context, caseID string) ([]*primary.Document, error) {
			return []*primary.Document{
				{DocType: "SALE_AGREEMENT", OriginalSeen: true, SeenBy: "clerk-01"},
				{DocType: "NOC"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCaseAdapter(mock, &buf)

	if err := adapter.Documents(context.Background(), "APP-0001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	var nocLine string
	for _, l := range lines {
		if strings.HasPrefix(l, "NOC") {
			nocLine = l
		}
	}
	if !strings.Contains(nocLine, "no") || !strings.Contains(nocLine, "-") {
		t.Errorf("expected unseen NOC row, got '%s'", nocLine)
	}
}

func TestCaseAdapter_MarkSeen(t *testing.T) {
	mock := &mockCaseService{}
	var buf bytes.Buffer
	adapter := NewCaseAdapter(mock, &buf)

	if err := adapter.MarkSeen(context.Background(), "APP-0001", "NOC", clerk); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastDocType != "NOC" || mock.lastActor.ID != "clerk-01" {
		t.Errorf("expected NOC by clerk-01, got %s by %s", mock.lastDocType, mock.lastActor.ID)
	}
	if !strings.Contains(buf.String(), "Original NOC seen") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestCaseAdapter_TransferOwnership(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCaseAdapter(&mockCaseService{}, &buf)

	if err := adapter.TransferOwnership(context.Background(), "APP-0001", clerk); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Plot PLOT-1 now owned by BUYER-1") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}
