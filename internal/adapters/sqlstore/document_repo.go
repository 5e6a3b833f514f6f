package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

const documentColumns = "id, case_id, doc_type, original_seen, seen_by, seen_at, created_at"

// DocumentRepository implements secondary.DocumentRepository.
type DocumentRepository struct {
	q       Querier
	dialect db.Dialect
}

// NewDocumentRepository creates a new intake document repository.
func NewDocumentRepository(q Querier, dialect db.Dialect) *DocumentRepository {
	return &DocumentRepository{q: q, dialect: dialect}
}

// Create persists a new document row.
func (r *DocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	doc.CreatedAt = orNow(doc.CreatedAt)
	_, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"INSERT INTO case_documents ("+documentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
		doc.ID, doc.CaseID, doc.DocType, doc.OriginalSeen, nullString(doc.SeenBy), nullTime(doc.SeenAt), doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func scanDocument(s scanner) (*secondary.DocumentRecord, error) {
	var (
		seenBy sql.NullString
		seenAt sql.NullTime
		record secondary.DocumentRecord
	)
	if err := s.Scan(&record.ID, &record.CaseID, &record.DocType, &record.OriginalSeen, &seenBy, &seenAt, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.SeenBy = seenBy.String
	if seenAt.Valid {
		record.SeenAt = seenAt.Time
	}
	return &record, nil
}

// GetByType retrieves a case's document of the given type.
func (r *DocumentRepository) GetByType(ctx context.Context, caseID, docType string) (*secondary.DocumentRecord, error) {
	row := r.q.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+documentColumns+" FROM case_documents WHERE case_id = ? AND doc_type = ?"), caseID, docType)
	record, err := scanDocument(row)
	if isNoRows(err) {
		return nil, notFound("document", caseID+"/"+docType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return record, nil
}

// ListByCase retrieves all documents recorded for a case.
func (r *DocumentRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.DocumentRecord, error) {
	rows, err := r.q.QueryContext(ctx, r.dialect.Rebind(
		"SELECT "+documentColumns+" FROM case_documents WHERE case_id = ? ORDER BY created_at, doc_type"), caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*secondary.DocumentRecord
	for rows.Next() {
		record, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, record)
	}
	return docs, rows.Err()
}

// MarkOriginalSeen flags that the original of a document was inspected.
func (r *DocumentRepository) MarkOriginalSeen(ctx context.Context, id, seenBy string, at time.Time) error {
	result, err := r.q.ExecContext(ctx, r.dialect.Rebind(
		"UPDATE case_documents SET original_seen = ?, seen_by = ?, seen_at = ? WHERE id = ?"),
		true, nullString(seenBy), orNow(at), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark document seen: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("document", id)
	}
	return nil
}

var _ secondary.DocumentRepository = (*DocumentRepository)(nil)
