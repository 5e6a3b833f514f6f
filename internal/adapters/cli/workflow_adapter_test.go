package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

func TestWorkflowAdapter_Request_Success(t *testing.T) {
	mock := &mockWorkflowService{
		requestFn: func(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error) {
			return &primary.TransitionResponse{
				Case:          &primary.Case{ID: req.CaseID},
				FromStage:     "UNDER_SCRUTINY",
				ToStage:       "SENT_TO_BCA_HOUSING",
				GuardName:     "GUARD_SENT_TO_BCA_HOUSING",
				GuardMetadata: map[string]any{"provisioned": []string{"BCA", "HOUSING"}},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewWorkflowAdapter(mock, &buf)

	err := adapter.Request(context.Background(), primary.TransitionRequest{CaseID: "APP-0001", ToStage: "SENT_TO_BCA_HOUSING"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastReq.ToStage != "SENT_TO_BCA_HOUSING" {
		t.Errorf("expected target SENT_TO_BCA_HOUSING, got %s", mock.lastReq.ToStage)
	}
	output := buf.String()
	if !strings.Contains(output, "UNDER_SCRUTINY → SENT_TO_BCA_HOUSING") {
		t.Errorf("expected move in output, got '%s'", output)
	}
	if !strings.Contains(output, "provisioned: [BCA HOUSING]") {
		t.Errorf("expected provisioned sections, got '%s'", output)
	}
}

func TestWorkflowAdapter_Request_Denied(t *testing.T) {
	denial := workflow.Denied("", workflow.GuardIntakeComplete, "intake incomplete: originals not seen for NOC",
		map[string]any{"notSeenDocs": []string{"NOC"}, "missingDocs": []string{}})
	mock := &mockWorkflowService{
		requestFn: func(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error) {
			return nil, denial
		},
	}
	var buf bytes.Buffer
	adapter := NewWorkflowAdapter(mock, &buf)

	err := adapter.Request(context.Background(), primary.TransitionRequest{CaseID: "APP-0001", ToStage: "UNDER_SCRUTINY"})

	if !errors.Is(err, workflow.ErrTransitionNotAllowed) {
		t.Fatalf("expected TransitionNotAllowed, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "DENIED") || !strings.Contains(output, "originals not seen for NOC") {
		t.Errorf("expected denial in output, got '%s'", output)
	}
	// metadata keys are printed sorted
	if strings.Index(output, "missingDocs") > strings.Index(output, "notSeenDocs") {
		t.Errorf("expected sorted metadata, got '%s'", output)
	}
}

func TestWorkflowAdapter_Request_PlainError(t *testing.T) {
	mock := &mockWorkflowService{
		requestFn: func(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error) {
			return nil, workflow.NewError(workflow.CodeCaseNotFound, "case %s not found", req.CaseID)
		},
	}
	var buf bytes.Buffer
	adapter := NewWorkflowAdapter(mock, &buf)

	err := adapter.Request(context.Background(), primary.TransitionRequest{CaseID: "APP-9999", ToStage: "2"})

	if !errors.Is(err, workflow.ErrCaseNotFound) {
		t.Fatalf("expected CaseNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got '%s'", buf.String())
	}
}

func TestWorkflowAdapter_Check(t *testing.T) {
	mock := &mockWorkflowService{
		checkFn: func(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionCheck, error) {
			return &primary.TransitionCheck{
				FromStage: "AWAITING_PAYMENT",
				ToStage:   "PAYMENT_PENDING",
				GuardName: "GUARD_PAYMENT_VERIFIED",
				Reason:    "payment incomplete: 10000 of 17000 paid",
				Metadata:  map[string]any{"remainingAmount": int64(7000)},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewWorkflowAdapter(mock, &buf)

	if err := adapter.Check(context.Background(), primary.TransitionRequest{CaseID: "APP-0001", ToStage: "PAYMENT_PENDING"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	for _, want := range []string{"DENIED", "10000 of 17000", "remainingAmount: 7000"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestWorkflowAdapter_Available(t *testing.T) {
	mock := &mockWorkflowService{
		availableFn: func(ctx context.Context, caseID string, actor primary.Actor) ([]*primary.TransitionCheck, error) {
			return []*primary.TransitionCheck{
				{ToStage: "APPROVED", GuardName: "GUARD_APPROVAL_COMPLETE", Allowed: true},
				{ToStage: "REJECTED", GuardName: "GUARD_APPROVAL_REJECTED", Reason: "APPROVAL review is not rejected"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewWorkflowAdapter(mock, &buf)

	if err := adapter.Available(context.Background(), "APP-0001", primary.Actor{ID: "approver-01", Role: "APPROVER"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "ALLOWED APPROVED") {
		t.Errorf("expected allowed APPROVED row, got '%s'", output)
	}
	if !strings.Contains(output, "REJECTED") || !strings.Contains(output, "not rejected") {
		t.Errorf("expected denied REJECTED row, got '%s'", output)
	}
}

func TestWorkflowAdapter_Available_None(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewWorkflowAdapter(&mockWorkflowService{}, &buf)

	if err := adapter.Available(context.Background(), "APP-0001", primary.Actor{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No transitions") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}
