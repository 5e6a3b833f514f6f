package clearance

import (
	"testing"

	"github.com/example/landxfer/internal/core/workflow"
)

func TestCanRecordClearance(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RecordContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "bca clears its own section",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionBCA, ActorRole: workflow.RoleBCA, NewStatus: workflow.ClearanceClear},
			wantAllowed: true,
		},
		{
			name:        "admin clears any section",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionHousing, ActorRole: workflow.RoleAdmin, NewStatus: workflow.ClearanceClear},
			wantAllowed: true,
		},
		{
			name:        "housing cannot clear bca",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionBCA, ActorRole: workflow.RoleHousing, NewStatus: workflow.ClearanceClear},
			wantAllowed: false,
			wantReason:  "only BCA can act on the BCA clearance (actor role: HOUSING)",
		},
		{
			name:        "objection needs remarks",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionHousing, ActorRole: workflow.RoleHousing, NewStatus: workflow.ClearanceObjection},
			wantAllowed: false,
			wantReason:  "remarks are required when raising an objection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRecordClearance(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanResolveObjection(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RecordContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "resolve raised objection",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionBCA, ActorRole: workflow.RoleBCA, CurrentStatus: workflow.ClearanceObjection},
			wantAllowed: true,
		},
		{
			name:        "nothing to resolve",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionBCA, ActorRole: workflow.RoleBCA, CurrentStatus: workflow.ClearancePending},
			wantAllowed: false,
			wantReason:  "BCA clearance for case APP-0001 is not in objection (status: PENDING)",
		},
		{
			name:        "no row",
			ctx:         RecordContext{CaseID: "APP-0001", Section: workflow.SectionHousing, ActorRole: workflow.RoleHousing},
			wantAllowed: false,
			wantReason:  "HOUSING clearance for case APP-0001 is not in objection (status: none)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanResolveObjection(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
