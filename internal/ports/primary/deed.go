package primary

import (
	"context"
	"time"
)

// DeedService defines the primary port for transfer deeds.
type DeedService interface {
	// DraftDeed creates or replaces the deed draft.
	DraftDeed(ctx context.Context, req DraftDeedRequest) (*Deed, error)

	// FinalizeDeed freezes the deed and stamps its content hash.
	FinalizeDeed(ctx context.Context, caseID string, actor Actor) (*Deed, error)

	// GetDeed retrieves a case's deed.
	GetDeed(ctx context.Context, caseID string) (*Deed, error)
}

// DraftDeedRequest contains parameters for drafting a deed.
type DraftDeedRequest struct {
	CaseID       string
	Witness1     string
	Witness2     string
	Content      string
	PhotoURL     string
	SignatureURL string
	Actor        Actor
}

// Deed is the public view of a transfer deed.
type Deed struct {
	ID           string
	CaseID       string
	Witness1     string
	Witness2     string
	Content      string
	PhotoURL     string
	SignatureURL string
	IsFinalized  bool
	ContentHash  string
	FinalizedBy  string
	FinalizedAt  time.Time
	UpdatedAt    time.Time
}
