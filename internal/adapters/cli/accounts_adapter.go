package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/landxfer/internal/ports/primary"
)

// AccountsAdapter translates fee and payment commands to AccountsService calls.
type AccountsAdapter struct {
	service primary.AccountsService
	out     io.Writer
}

// NewAccountsAdapter creates a new AccountsAdapter with the given service.
func NewAccountsAdapter(service primary.AccountsService, out io.Writer) *AccountsAdapter {
	return &AccountsAdapter{
		service: service,
		out:     out,
	}
}

// Calculate sets the fee heads for a case.
func (a *AccountsAdapter) Calculate(ctx context.Context, req primary.CalculateBreakdownRequest) error {
	b, err := a.service.CalculateBreakdown(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Breakdown for %s: total %d, remaining %d\n", b.CaseID, b.TotalAmount, b.RemainingAmount)
	return nil
}

// VerifyPayment records a payment.
func (a *AccountsAdapter) VerifyPayment(ctx context.Context, caseID string, paid int64, actor primary.Actor) error {
	b, err := a.service.VerifyPayment(ctx, caseID, paid, actor)
	if err != nil {
		return err
	}

	if b.PaymentVerified {
		fmt.Fprintf(a.out, "✓ Payment verified for %s: %d of %d\n", b.CaseID, b.PaidAmount, b.TotalAmount)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Payment recorded for %s: %d of %d (%d remaining)\n", b.CaseID, b.PaidAmount, b.TotalAmount, b.RemainingAmount)
	return nil
}

// Object puts the breakdown on hold.
func (a *AccountsAdapter) Object(ctx context.Context, caseID, reason string, actor primary.Actor) error {
	b, err := a.service.RaiseObjection(ctx, caseID, reason, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Accounts for %s on hold: %s\n", b.CaseID, b.ObjectionReason)
	return nil
}

// Resolve lifts an accounts hold.
func (a *AccountsAdapter) Resolve(ctx context.Context, caseID string, actor primary.Actor) error {
	b, err := a.service.ResolveObjection(ctx, caseID, actor)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Accounts hold on %s lifted (now %s)\n", b.CaseID, b.Status)
	return nil
}

// Show prints the breakdown.
func (a *AccountsAdapter) Show(ctx context.Context, caseID string) error {
	b, err := a.service.GetBreakdown(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to get breakdown: %w", err)
	}

	heads := []struct {
		name   string
		amount int64
	}{
		{"Transfer fee", b.Fees.TransferFee},
		{"Stamp duty", b.Fees.StampDuty},
		{"Registration", b.Fees.RegistrationFee},
		{"Mutation", b.Fees.MutationFee},
		{"Processing", b.Fees.ProcessingFee},
		{"Development", b.Fees.DevelopmentCharges},
		{"Arrears", b.Fees.Arrears},
		{"Penalty", b.Fees.Penalty},
	}

	fmt.Fprintf(a.out, "\nAccounts: %s (%s)\n", b.CaseID, b.Status)
	fmt.Fprintln(a.out, rule)
	for _, h := range heads {
		fmt.Fprintf(a.out, "%-15s %12d\n", h.name, h.amount)
	}
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "%-15s %12d\n", "Total", b.TotalAmount)
	fmt.Fprintf(a.out, "%-15s %12d\n", "Paid", b.PaidAmount)
	fmt.Fprintf(a.out, "%-15s %12d\n", "Remaining", b.RemainingAmount)
	if b.ObjectionReason != "" {
		fmt.Fprintf(a.out, "Objection: %s (%s)\n", b.ObjectionReason, formatTime(b.ObjectionAt))
	}
	fmt.Fprintln(a.out)

	return nil
}
