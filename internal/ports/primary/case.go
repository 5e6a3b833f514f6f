package primary

import (
	"context"
	"time"
)

// CaseService defines the primary port for case intake and ownership.
type CaseService interface {
	// CreateCase opens a new case at SUBMITTED.
	CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error)

	// GetCase retrieves a case by ID.
	GetCase(ctx context.Context, caseID string) (*Case, error)

	// ListCases lists cases with optional filters.
	ListCases(ctx context.Context, filters CaseFilters) ([]*Case, error)

	// RecordDocument records that a required document was submitted. Idempotent.
	RecordDocument(ctx context.Context, caseID, docType string, actor Actor) (*Document, error)

	// MarkOriginalSeen flags that the original of a document was inspected.
	MarkOriginalSeen(ctx context.Context, caseID, docType string, actor Actor) (*Document, error)

	// ListDocuments lists the documents recorded for a case.
	ListDocuments(ctx context.Context, caseID string) ([]*Document, error)

	// TransferOwnership switches the plot owner to the buyer.
	TransferOwnership(ctx context.Context, caseID string, actor Actor) (*Case, error)
}

// CreateCaseRequest contains parameters for opening a case.
type CreateCaseRequest struct {
	ApplicantName string
	SellerRef     string
	BuyerRef      string
	PlotRef       string
	Actor         Actor
}

// CaseFilters contains filter options for listing cases.
type CaseFilters struct {
	Stage  string
	Status string
	Limit  int
}

// Document is the public view of an intake document.
type Document struct {
	ID           string
	CaseID       string
	DocType      string
	OriginalSeen bool
	SeenBy       string
	SeenAt       time.Time
}
