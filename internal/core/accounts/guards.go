// Package accounts contains the pure business logic for fee calculation and
// payment verification.
// This is part of the Functional Core - no I/O, only pure functions.
package accounts

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// FeeHeads are the eight charges that make up a transfer's total, in whole
// currency units.
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

func (f FeeHeads) named() []struct {
	name   string
	amount int64
} {
	return []struct {
		name   string
		amount int64
	}{
		{"transfer_fee", f.TransferFee},
		{"stamp_duty", f.StampDuty},
		{"registration_fee", f.RegistrationFee},
		{"mutation_fee", f.MutationFee},
		{"processing_fee", f.ProcessingFee},
		{"development_charges", f.DevelopmentCharges},
		{"arrears", f.Arrears},
		{"penalty", f.Penalty},
	}
}

// Total sums the fee heads.
func (f FeeHeads) Total() int64 {
	var total int64
	for _, h := range f.named() {
		total += h.amount
	}
	return total
}

// Validate rejects negative fee heads.
func (f FeeHeads) Validate() error {
	var negative []string
	for _, h := range f.named() {
		if h.amount < 0 {
			negative = append(negative, h.name)
		}
	}
	if len(negative) > 0 {
		return fmt.Errorf("fee heads must not be negative: %s", strings.Join(negative, ", "))
	}
	return nil
}

// PaymentOutcome is the result of applying a paid amount to a total.
type PaymentOutcome struct {
	Paid      int64
	Remaining int64
	Verified  bool
}

// ApplyPayment computes the remaining balance and verification flag.
// Remaining never goes below zero.
func ApplyPayment(total, paid int64) PaymentOutcome {
	remaining := total - paid
	if remaining < 0 {
		remaining = 0
	}
	return PaymentOutcome{
		Paid:      paid,
		Remaining: remaining,
		Verified:  total > 0 && paid >= total,
	}
}

// CalculateContext provides context for breakdown calculation guards.
type CalculateContext struct {
	CaseID          string
	ActorRole       string
	Fees            FeeHeads
	PaymentVerified bool
}

// CanCalculate evaluates whether a breakdown can be (re)calculated.
// Rules:
// - Actor must be ACCOUNTS or ADMIN
// - Fee heads must be non-negative and sum to more than zero
// - A breakdown whose payment is verified is frozen
func CanCalculate(ctx CalculateContext) GuardResult {
	if ctx.ActorRole != "ACCOUNTS" && ctx.ActorRole != "ADMIN" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only ACCOUNTS can calculate fees (actor role: %s)", ctx.ActorRole),
		}
	}
	if err := ctx.Fees.Validate(); err != nil {
		return GuardResult{Allowed: false, Reason: err.Error()}
	}
	if ctx.Fees.Total() <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "fee total must be greater than zero",
		}
	}
	if ctx.PaymentVerified {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot recalculate fees for case %s: payment already verified", ctx.CaseID),
		}
	}

	return GuardResult{Allowed: true}
}

// VerifyPaymentContext provides context for payment verification guards.
type VerifyPaymentContext struct {
	CaseID          string
	ActorRole       string
	BreakdownExists bool
	TotalAmount     int64
	PaidAmount      int64
}

// CanVerifyPayment evaluates whether a payment can be recorded.
// Rules:
// - Actor must be ACCOUNTS or ADMIN
// - A breakdown must exist with total > 0
// - Paid amount must not be negative
func CanVerifyPayment(ctx VerifyPaymentContext) GuardResult {
	if ctx.ActorRole != "ACCOUNTS" && ctx.ActorRole != "ADMIN" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only ACCOUNTS can verify payments (actor role: %s)", ctx.ActorRole),
		}
	}
	if !ctx.BreakdownExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("no accounts breakdown for case %s", ctx.CaseID),
		}
	}
	if ctx.TotalAmount <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("accounts breakdown for case %s has not been calculated", ctx.CaseID),
		}
	}
	if ctx.PaidAmount < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "paid amount must not be negative",
		}
	}

	return GuardResult{Allowed: true}
}

// ObjectionContext provides context for accounts objection guards.
type ObjectionContext struct {
	CaseID          string
	ActorRole       string
	Status          string
	Reason          string
	BreakdownExists bool
}

// CanRaiseObjection evaluates whether accounts can put a breakdown on hold.
// Rules:
// - Actor must be ACCOUNTS or ADMIN
// - A breakdown must exist and not already be ON_HOLD
// - A reason is required
func CanRaiseObjection(ctx ObjectionContext) GuardResult {
	if ctx.ActorRole != "ACCOUNTS" && ctx.ActorRole != "ADMIN" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only ACCOUNTS can raise accounts objections (actor role: %s)", ctx.ActorRole),
		}
	}
	if !ctx.BreakdownExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("no accounts breakdown for case %s", ctx.CaseID),
		}
	}
	if ctx.Status == "ON_HOLD" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("accounts for case %s are already on hold", ctx.CaseID),
		}
	}
	if strings.TrimSpace(ctx.Reason) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "an objection reason is required",
		}
	}

	return GuardResult{Allowed: true}
}

// CanResolveObjection evaluates whether an accounts hold can be lifted.
// Rules:
// - Actor must be ACCOUNTS or ADMIN
// - Breakdown must be ON_HOLD
func CanResolveObjection(ctx ObjectionContext) GuardResult {
	if ctx.ActorRole != "ACCOUNTS" && ctx.ActorRole != "ADMIN" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only ACCOUNTS can resolve accounts objections (actor role: %s)", ctx.ActorRole),
		}
	}
	if !ctx.BreakdownExists || ctx.Status != "ON_HOLD" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("accounts for case %s are not on hold", ctx.CaseID),
		}
	}

	return GuardResult{Allowed: true}
}
