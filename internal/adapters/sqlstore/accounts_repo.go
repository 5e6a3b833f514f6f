package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const accountsColumns = "id, case_id, transfer_fee, stamp_duty, registration_fee, mutation_fee, processing_fee, " +
	"development_charges, arrears, penalty, total_amount, paid_amount, remaining_amount, payment_verified, status, " +
	"objection_reason, objection_at, resolved_at, calculated_by, verified_by, created_at, updated_at"

// AccountsRepository implements secondary.AccountsRepository.
type AccountsRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewAccountsRepository creates a new accounts breakdown repository.
func NewAccountsRepository(q Querier, dialect db.Dialect) *AccountsRepository {
	return &AccountsRepository{q: q, dialect: dialect}
}

// Create persists a new breakdown. The case_id unique constraint rejects a
// second breakdown for the same case.
func (r *AccountsRepository) Create(ctx context.Context, a *secondary.AccountsRecord) error {
	a.CreatedAt = orNow(a.CreatedAt)
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO accounts_breakdowns ("+accountsColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		a.ID, a.CaseID, a.TransferFee, a.StampDuty, a.RegistrationFee, a.MutationFee, a.ProcessingFee,
		a.DevelopmentCharges, a.Arrears, a.Penalty, a.TotalAmount, a.PaidAmount, a.RemainingAmount,
		a.PaymentVerified, a.Status, nullString(a.ObjectionReason), nullTime(a.ObjectionAt), nullTime(a.ResolvedAt),
		nullString(a.CalculatedBy), nullString(a.VerifiedBy), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create accounts breakdown: %w", err)
	}
	return nil
}

// GetByCase retrieves the breakdown for a case.
func (r *AccountsRepository) GetByCase(ctx context.Context, caseID string) (*secondary.AccountsRecord, error) {
	var (
		objectionReason sql.NullString
		objectionAt     sql.NullTime
		resolvedAt      sql.NullTime
		calculatedBy    sql.NullString
		verifiedBy      sql.NullString
		a               secondary.AccountsRecord
	)

	err := r.q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+accountsColumns+" FROM accounts_breakdowns WHERE case_id = ?"), caseID,
	).Scan(&a.ID, &a.CaseID, &a.TransferFee, &a.StampDuty, &a.RegistrationFee, &a.MutationFee, &a.ProcessingFee,
		&a.DevelopmentCharges, &a.Arrears, &a.Penalty, &a.TotalAmount, &a.PaidAmount, &a.RemainingAmount,
		&a.PaymentVerified, &a.Status, &objectionReason, &objectionAt, &resolvedAt,
		&calculatedBy, &verifiedBy, &a.CreatedAt, &a.UpdatedAt)
	if isNoRows(err) {
		return nil, notFound("accounts breakdown for case", caseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts breakdown: %w", err)
	}

	a.ObjectionReason = objectionReason.String
	if objectionAt.Valid {
		a.ObjectionAt = objectionAt.Time
	}
	if resolvedAt.Valid {
		a.ResolvedAt = resolvedAt.Time
	}
	a.CalculatedBy = calculatedBy.String
	a.VerifiedBy = verifiedBy.String

	return &a, nil
}

// Update replaces the amounts and status of a breakdown.
func (r *AccountsRepository) Update(ctx context.Context, a *secondary.AccountsRecord) error {
	a.UpdatedAt = orNow(a.UpdatedAt)
	result, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE accounts_breakdowns SET transfer_fee = ?, stamp_duty = ?, registration_fee = ?, mutation_fee = ?, "+
			"processing_fee = ?, development_charges = ?, arrears = ?, penalty = ?, total_amount = ?, paid_amount = ?, "+
			"remaining_amount = ?, payment_verified = ?, status = ?, objection_reason = ?, objection_at = ?, resolved_at = ?, "+
			"calculated_by = ?, verified_by = ?, updated_at = ? WHERE id = ?"),
		a.TransferFee, a.StampDuty, a.RegistrationFee, a.MutationFee,
		a.ProcessingFee, a.DevelopmentCharges, a.Arrears, a.Penalty, a.TotalAmount, a.PaidAmount,
		a.RemainingAmount, a.PaymentVerified, a.Status, nullString(a.ObjectionReason), nullTime(a.ObjectionAt), nullTime(a.ResolvedAt),
		nullString(a.CalculatedBy), nullString(a.VerifiedBy), a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update accounts breakdown: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("accounts breakdown", a.ID)
	}
	return nil
}

var _ secondary.AccountsRepository = (*AccountsRepository)(nil)
