// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is wrapped by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrImmutable is returned when a write targets a row that may no longer change.
var ErrImmutable = errors.New("record is immutable")

// CaseRepository defines the secondary port for case persistence.
type CaseRepository interface {
	// Create persists a new case.
	Create(ctx context.Context, c *CaseRecord) error

	// GetByID retrieves a case by its ID.
	GetByID(ctx context.Context, id string) (*CaseRecord, error)

	// GetForUpdate retrieves a case and locks its row for the rest of the
	// enclosing transaction where the backend supports row locks.
	GetForUpdate(ctx context.Context, id string) (*CaseRecord, error)

	// List retrieves cases matching the given filters.
	List(ctx context.Context, filters CaseFilters) ([]*CaseRecord, error)

	// UpdateStage moves the stage pointers only if the case is still at
	// fromStageID. Returns false when the case has moved on.
	UpdateStage(ctx context.Context, id string, fromStageID, toStageID int, at time.Time) (bool, error)

	// UpdateStatus sets the free-form status flag.
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error

	// UpdateOwner records the current owner of the plot.
	UpdateOwner(ctx context.Context, id, ownerRef string, at time.Time) error

	// GetNextID returns the next available case ID.
	GetNextID(ctx context.Context) (string, error)
}

// CaseRecord represents a case as stored in persistence.
type CaseRecord struct {
	ID              string
	CurrentStageID  int
	PreviousStageID int // 0 means null
	Status          string
	ApplicantName   string
	SellerRef       string
	BuyerRef        string
	PlotRef         string
	OwnerRef        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CaseFilters contains filter options for querying cases.
type CaseFilters struct {
	StageID int
	Status  string
	Limit   int
}

// DocumentRepository defines the secondary port for intake document persistence.
type DocumentRepository interface {
	// Create persists a new document row.
	Create(ctx context.Context, doc *DocumentRecord) error

	// GetByType retrieves a case's document of the given type.
	GetByType(ctx context.Context, caseID, docType string) (*DocumentRecord, error)

	// ListByCase retrieves all documents recorded for a case.
	ListByCase(ctx context.Context, caseID string) ([]*DocumentRecord, error)

	// MarkOriginalSeen flags that the original of a document was inspected.
	MarkOriginalSeen(ctx context.Context, id, seenBy string, at time.Time) error
}

// DocumentRecord represents an intake document as stored in persistence.
type DocumentRecord struct {
	ID           string
	CaseID       string
	DocType      string
	OriginalSeen bool
	SeenBy       string    // Empty string means null
	SeenAt       time.Time // Zero means null
	CreatedAt    time.Time
}

// ClearanceRepository defines the secondary port for section clearance persistence.
type ClearanceRepository interface {
	// Create persists a new clearance. Storage rejects a second row per (case, section).
	Create(ctx context.Context, c *ClearanceRecord) error

	// GetBySection retrieves a case's clearance for a section.
	GetBySection(ctx context.Context, caseID, section string) (*ClearanceRecord, error)

	// ListByCase retrieves all clearances for a case.
	ListByCase(ctx context.Context, caseID string) ([]*ClearanceRecord, error)

	// Update updates status, remarks and cleared timestamp of a clearance.
	Update(ctx context.Context, c *ClearanceRecord) error
}

// ClearanceRecord represents a clearance as stored in persistence.
type ClearanceRecord struct {
	ID        string
	CaseID    string
	Section   string
	Status    string
	Remarks   string
	UpdatedBy string    // Empty string means null
	ClearedAt time.Time // Zero means null
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewRepository defines the secondary port for reviewer verdict persistence.
type ReviewRepository interface {
	// Upsert creates or replaces the review for (case, section).
	Upsert(ctx context.Context, r *ReviewRecord) error

	// GetBySection retrieves a case's review for a section.
	GetBySection(ctx context.Context, caseID, section string) (*ReviewRecord, error)

	// ListByCase retrieves all reviews for a case.
	ListByCase(ctx context.Context, caseID string) ([]*ReviewRecord, error)
}

// ReviewRecord represents a review as stored in persistence.
type ReviewRecord struct {
	ID         string
	CaseID     string
	Section    string
	ReviewerID string
	Status     string
	Remarks    string
	ReviewedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountsRepository defines the secondary port for accounts breakdown persistence.
type AccountsRepository interface {
	// Create persists a new breakdown. Storage rejects a second row per case.
	Create(ctx context.Context, a *AccountsRecord) error

	// GetByCase retrieves the breakdown for a case.
	GetByCase(ctx context.Context, caseID string) (*AccountsRecord, error)

	// Update replaces the amounts and status of a breakdown.
	Update(ctx context.Context, a *AccountsRecord) error
}

// AccountsRecord represents an accounts breakdown as stored in persistence.
type AccountsRecord struct {
	ID                 string
	CaseID             string
	TransferFee        int64
	StampDuty          int64
	RegistrationFee    int64
	MutationFee        int64
	ProcessingFee      int64
	DevelopmentCharges int64
	Arrears            int64
	Penalty            int64
	TotalAmount        int64
	PaidAmount         int64
	RemainingAmount    int64
	PaymentVerified    bool
	Status             string // PENDING, AWAITING_PAYMENT, ON_HOLD
	ObjectionReason    string
	ObjectionAt        time.Time // Zero means null
	ResolvedAt         time.Time // Zero means null
	CalculatedBy       string
	VerifiedBy         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DeedRepository defines the secondary port for transfer deed persistence.
type DeedRepository interface {
	// Create persists a new deed draft.
	Create(ctx context.Context, d *DeedRecord) error

	// GetByCase retrieves the deed for a case.
	GetByCase(ctx context.Context, caseID string) (*DeedRecord, error)

	// Update replaces the deed. Returns ErrImmutable once the stored row is finalized.
	Update(ctx context.Context, d *DeedRecord) error
}

// DeedRecord represents a transfer deed as stored in persistence.
type DeedRecord struct {
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
	FinalizedAt  time.Time // Zero means null
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuditRepository defines the secondary port for the append-only audit trail.
// Entries are never updated or deleted.
type AuditRepository interface {
	// Append inserts a new audit entry.
	Append(ctx context.Context, e *AuditRecord) error

	// ListByCase retrieves a case's entries in chronological order.
	ListByCase(ctx context.Context, caseID string) ([]*AuditRecord, error)
}

// AuditRecord represents an audit entry as stored in persistence.
type AuditRecord struct {
	ID          string
	CaseID      string
	ActorID     string
	ActorRole   string
	Action      string
	FromStageID int // 0 means null
	ToStageID   int // 0 means null
	Detail      string
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
}

// ReferenceDataRepository reads the seeded stage and transition tables.
type ReferenceDataRepository interface {
	ListStages(ctx context.Context) ([]*StageRecord, error)
	ListTransitions(ctx context.Context) ([]*TransitionRecord, error)
}

// StageRecord is a seeded stage row.
type StageRecord struct {
	ID        int
	Code      string
	Name      string
	SortOrder int
}

// TransitionRecord is a seeded transition row.
type TransitionRecord struct {
	ID          int
	FromStageID int
	ToStageID   int
	GuardName   string
	SortOrder   int
}

// Repositories is the set of repositories bound to one connection or transaction.
type Repositories interface {
	Cases() CaseRepository
	Documents() DocumentRepository
	Clearances() ClearanceRepository
	Reviews() ReviewRepository
	Accounts() AccountsRepository
	Deeds() DeedRepository
	Audit() AuditRepository
}

// Store is the storage handle shared by the engine and the domain services.
// WithTx runs fn against repositories bound to a single transaction; the
// transaction commits when fn returns nil and rolls back otherwise.
type Store interface {
	Repositories
	ReferenceData() ReferenceDataRepository
	WithTx(ctx context.Context, fn func(tx Repositories) error) error
}
