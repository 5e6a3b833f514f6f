// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/example/landxfer/internal/core/effects"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// EffectScope is what effects run against: the repositories of the open
// transaction and the actor the writes are attributed to.
type EffectScope struct {
	Repos   secondary.Repositories
	Actor   primary.Actor
	StageID int
}

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place guard plans touch storage.
type EffectExecutor interface {
	Execute(ctx context.Context, scope EffectScope, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor against the repositories.
type DefaultEffectExecutor struct {
	audit  *AuditWriter
	logger *zap.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(audit *AuditWriter, logger *zap.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{audit: audit, logger: logging.OrNop(logger)}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, scope EffectScope, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, scope, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, scope EffectScope, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.ProvisionClearanceEffect:
		return e.provisionClearance(ctx, scope, typed)
	case effects.ProvisionAccountsEffect:
		return e.provisionAccounts(ctx, scope, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, scope, typed.Effects)
	case effects.LogEffect:
		e.log(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) log(eff effects.LogEffect) {
	level, err := zapcore.ParseLevel(eff.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	ce := e.logger.Check(level, eff.Message)
	if ce == nil {
		return
	}
	keys := make([]string, 0, len(eff.Fields))
	for k := range eff.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, eff.Fields[k]))
	}
	ce.Write(fields...)
}

// provisionClearance creates the clearance row only when the section has none.
func (e *DefaultEffectExecutor) provisionClearance(ctx context.Context, scope EffectScope, eff effects.ProvisionClearanceEffect) error {
	repo := scope.Repos.Clearances()
	_, err := repo.GetBySection(ctx, eff.CaseID, string(eff.Section))
	if err == nil {
		return nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return err
	}

	record := &secondary.ClearanceRecord{
		ID:        uuid.NewString(),
		CaseID:    eff.CaseID,
		Section:   string(eff.Section),
		Status:    string(eff.Status),
		UpdatedBy: scope.Actor.ID,
		CreatedAt: e.audit.now(),
	}
	if err := repo.Create(ctx, record); err != nil {
		return err
	}

	return e.audit.Append(ctx, scope.Repos.Audit(), auditEvent{
		CaseID: eff.CaseID,
		Actor:  scope.Actor,
		Action: workflow.ActionClearanceCreated,
		Detail: map[string]any{
			"stage":       stageCode(scope.StageID),
			"section":     string(eff.Section),
			"status":      string(eff.Status),
			"provisioned": true,
		},
	})
}

// provisionAccounts creates an empty breakdown only when the case has none.
func (e *DefaultEffectExecutor) provisionAccounts(ctx context.Context, scope EffectScope, eff effects.ProvisionAccountsEffect) error {
	repo := scope.Repos.Accounts()
	_, err := repo.GetByCase(ctx, eff.CaseID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return err
	}

	return repo.Create(ctx, &secondary.AccountsRecord{
		ID:        uuid.NewString(),
		CaseID:    eff.CaseID,
		Status:    string(eff.Status),
		CreatedAt: e.audit.now(),
	})
}
