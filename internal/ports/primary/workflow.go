// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI and other callers drive the engine.
package primary

import (
	"context"
	"time"
)

// WorkflowService defines the primary port for stage transitions.
type WorkflowService interface {
	// RequestTransition moves a case to another stage if an edge exists and
	// its guard allows. Denials are returned as *workflow.Error.
	RequestTransition(ctx context.Context, req TransitionRequest) (*TransitionResponse, error)

	// CheckTransition evaluates the guard for a move without provisioning or
	// mutating anything.
	CheckTransition(ctx context.Context, req TransitionRequest) (*TransitionCheck, error)

	// AvailableTransitions evaluates every outgoing edge of the case's current stage.
	AvailableTransitions(ctx context.Context, caseID string, actor Actor) ([]*TransitionCheck, error)

	// AttemptAutoProgress tries the single follow-up move a trigger maps to.
	// Returns nil, nil when nothing applies or the guard is not yet satisfied.
	AttemptAutoProgress(ctx context.Context, req AutoProgressRequest) (*TransitionResponse, error)
}

// Actor identifies who is acting and in what role.
type Actor struct {
	ID   string
	Role string
}

// TransitionRequest contains parameters for a transition.
type TransitionRequest struct {
	CaseID    string
	ToStage   string // stage code or numeric id
	FromStage string // Optional - defaults to the stage read when the request arrives
	Actor     Actor
	Remarks   string
	Extra     map[string]any
}

// TransitionResponse contains the result of a committed transition.
type TransitionResponse struct {
	Case          *Case
	FromStage     string
	ToStage       string
	GuardName     string
	GuardReason   string
	GuardMetadata map[string]any
	Action        string
}

// TransitionCheck is a guard verdict for one edge, without side effects.
type TransitionCheck struct {
	CaseID    string
	FromStage string
	ToStage   string
	GuardName string
	Allowed   bool
	Reason    string
	Metadata  map[string]any
}

// AutoProgressRequest contains parameters for an auto-progression attempt.
type AutoProgressRequest struct {
	CaseID  string
	Trigger string
	Actor   Actor
}

// PostTransitionHook runs after a transition has committed. Errors are logged
// and never undo the transition.
type PostTransitionHook interface {
	Name() string
	AfterTransition(ctx context.Context, resp *TransitionResponse) error
}

// Case is the public view of a case.
type Case struct {
	ID            string
	Stage         string
	StageName     string
	PreviousStage string
	Status        string
	ApplicantName string
	SellerRef     string
	BuyerRef      string
	PlotRef       string
	OwnerRef      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
