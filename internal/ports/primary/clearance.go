package primary

import (
	"context"
	"time"
)

// ClearanceService defines the primary port for section clearances.
type ClearanceService interface {
	// RecordClearance creates or updates the clearance for a section.
	RecordClearance(ctx context.Context, req RecordClearanceRequest) (*Clearance, error)

	// RaiseObjection puts a section's clearance into OBJECTION.
	RaiseObjection(ctx context.Context, caseID, section, remarks string, actor Actor) (*Clearance, error)

	// ResolveObjection moves an OBJECTION clearance back to PENDING.
	ResolveObjection(ctx context.Context, caseID, section, remarks string, actor Actor) (*Clearance, error)

	// ListClearances lists a case's clearances.
	ListClearances(ctx context.Context, caseID string) ([]*Clearance, error)
}

// RecordClearanceRequest contains parameters for recording a clearance.
type RecordClearanceRequest struct {
	CaseID  string
	Section string
	Status  string
	Remarks string
	Actor   Actor
}

// Clearance is the public view of a section clearance.
type Clearance struct {
	ID        string
	CaseID    string
	Section   string
	Status    string
	Remarks   string
	UpdatedBy string
	ClearedAt time.Time
	UpdatedAt time.Time
}
