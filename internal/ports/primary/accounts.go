package primary

import (
	"context"
	"time"
)

// AccountsService defines the primary port for fee calculation and payment.
type AccountsService interface {
	// CalculateBreakdown sets the fee heads and totals for a case.
	CalculateBreakdown(ctx context.Context, req CalculateBreakdownRequest) (*AccountsBreakdown, error)

	// VerifyPayment records the paid amount; a full payment clears the
	// ACCOUNTS section.
	VerifyPayment(ctx context.Context, caseID string, paidAmount int64, actor Actor) (*AccountsBreakdown, error)

	// RaiseObjection puts the breakdown on hold.
	RaiseObjection(ctx context.Context, caseID, reason string, actor Actor) (*AccountsBreakdown, error)

	// ResolveObjection lifts a hold.
	ResolveObjection(ctx context.Context, caseID string, actor Actor) (*AccountsBreakdown, error)

	// GetBreakdown retrieves a case's breakdown.
	GetBreakdown(ctx context.Context, caseID string) (*AccountsBreakdown, error)
}

// FeeHeads are the eight charges of a breakdown.
type FeeHeads struct {
	TransferFee        int64
	StampDuty          int64
	RegistrationFee    int64
	MutationFee        int64
	ProcessingFee      int64
	DevelopmentCharges int64
	Arrears            int64
	Penalty            int64
}

// CalculateBreakdownRequest contains parameters for calculating fees.
type CalculateBreakdownRequest struct {
	CaseID string
	Fees   FeeHeads
	Actor  Actor
}

// AccountsBreakdown is the public view of a breakdown.
type AccountsBreakdown struct {
	CaseID          string
	Fees            FeeHeads
	TotalAmount     int64
	PaidAmount      int64
	RemainingAmount int64
	PaymentVerified bool
	Status          string
	ObjectionReason string
	ObjectionAt     time.Time
	ResolvedAt      time.Time
	UpdatedAt       time.Time
}
