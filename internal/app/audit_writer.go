package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/ctxutil"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// auditEvent is one significant write to record.
type auditEvent struct {
	CaseID      string
	Actor       primary.Actor
	Action      workflow.Action
	FromStageID int
	ToStageID   int
	Detail      map[string]any
}

// AuditWriter appends audit entries through whichever AuditRepository the
// caller's transaction is bound to. Provenance is read from the context and
// written in the same insert.
type AuditWriter struct {
	now func() time.Time
}

// NewAuditWriter creates a new AuditWriter.
func NewAuditWriter() *AuditWriter {
	return &AuditWriter{now: defaultNow}
}

// Append writes ev to repo.
func (w *AuditWriter) Append(ctx context.Context, repo secondary.AuditRepository, ev auditEvent) error {
	// Actor from the request, falling back to the context
	actorID := ev.Actor.ID
	if actorID == "" {
		actorID = ctxutil.ActorFromContext(ctx)
	}

	var detail string
	if len(ev.Detail) > 0 {
		data, err := json.Marshal(ev.Detail)
		if err != nil {
			return fmt.Errorf("failed to encode audit detail: %w", err)
		}
		detail = string(data)
	}

	// v7 ids sort by creation time
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate audit ID: %w", err)
	}

	prov := ctxutil.ProvenanceFromContext(ctx)
	record := &secondary.AuditRecord{
		ID:          id.String(),
		CaseID:      ev.CaseID,
		ActorID:     actorID,
		ActorRole:   ev.Actor.Role,
		Action:      string(ev.Action),
		FromStageID: ev.FromStageID,
		ToStageID:   ev.ToStageID,
		Detail:      detail,
		IPAddress:   prov.IPAddress,
		UserAgent:   prov.UserAgent,
		CreatedAt:   w.now(),
	}

	return repo.Append(ctx, record)
}
