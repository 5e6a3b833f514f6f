package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const auditColumns = "id, case_id, actor_id, actor_role, action, from_stage_id, to_stage_id, detail, ip_address, user_agent, created_at"

// AuditRepository implements secondary.AuditRepository. It only ever
// inserts and reads.
type AuditRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(q Querier, dialect db.Dialect) *AuditRepository {
	return &AuditRepository{q: q, dialect: dialect}
}

// Append inserts a new audit entry.
func (r *AuditRepository) Append(ctx context.Context, e *secondary.AuditRecord) error {
	e.CreatedAt = orNow(e.CreatedAt)
	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO audit_log ("+auditColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		e.ID, e.CaseID, e.ActorID, e.ActorRole, e.Action, nullInt(e.FromStageID), nullInt(e.ToStageID),
		nullString(e.Detail), nullString(e.IPAddress), nullString(e.UserAgent), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListByCase retrieves a case's entries in chronological order. IDs are
// time-ordered, so they break ties between equal timestamps.
func (r *AuditRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.AuditRecord, error) {
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(
		"SELECT "+auditColumns+" FROM audit_log WHERE case_id = ? ORDER BY created_at, id"), caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		var (
			fromStage sql.NullInt64
			toStage   sql.NullInt64
			detail    sql.NullString
			ip        sql.NullString
			userAgent sql.NullString
			e         secondary.AuditRecord
		)
		if err := rows.Scan(&e.ID, &e.CaseID, &e.ActorID, &e.ActorRole, &e.Action, &fromStage, &toStage,
			&detail, &ip, &userAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.FromStageID = int(fromStage.Int64)
		e.ToStageID = int(toStage.Int64)
		e.Detail = detail.String
		e.IPAddress = ip.String
		e.UserAgent = userAgent.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

var _ secondary.AuditRepository = (*AuditRepository)(nil)
