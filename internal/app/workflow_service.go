package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/logging"
	"github.com/example/landxfer/internal/ports/primary"
	"github.com/example/landxfer/internal/ports/secondary"
)

// WorkflowServiceImpl implements the WorkflowService interface. It is the only
// writer of a case's stage pointers.
type WorkflowServiceImpl struct {
	store    secondary.Store
	registry *GuardRegistry
	executor EffectExecutor
	audit    *AuditWriter
	hooks    []primary.PostTransitionHook
	logger   *zap.Logger
	now      func() time.Time
}

// NewWorkflowService creates a new WorkflowService with injected dependencies.
func NewWorkflowService(
	store secondary.Store,
	registry *GuardRegistry,
	executor EffectExecutor,
	audit *AuditWriter,
	logger *zap.Logger,
	hooks ...primary.PostTransitionHook,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		store:    store,
		registry: registry,
		executor: executor,
		audit:    audit,
		hooks:    hooks,
		logger:   logging.OrNop(logger),
		now:      defaultNow,
	}
}

// RequestTransition moves a case along one edge of the graph. Without an
// explicit FromStage the request assumes the stage the case is at when it
// arrives; if another request moves the case before this one locks it, this
// one fails with InvalidTransition.
func (s *WorkflowServiceImpl) RequestTransition(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error) {
	if req.FromStage == "" {
		record, err := s.store.Cases().GetByID(ctx, req.CaseID)
		if err != nil {
			return nil, loadCaseErr(req.CaseID, err)
		}
		req.FromStage = strconv.Itoa(record.CurrentStageID)
	}
	return s.transition(ctx, req, workflow.ActionStageTransition)
}

// plan is a resolved move: the locked case, both stages and the edge.
type plan struct {
	record *secondary.CaseRecord
	from   workflow.Stage
	to     workflow.Stage
	edge   workflow.Edge
	gctx   GuardContext
}

// resolve runs the lookups that precede the guard: case, target stage,
// expected from-stage (always set for writes), edge, then the guard context.
func resolve(ctx context.Context, cases secondary.CaseRepository, forUpdate bool, req primary.TransitionRequest) (*plan, error) {
	load := cases.GetByID
	if forUpdate {
		load = cases.GetForUpdate
	}
	record, err := load(ctx, req.CaseID)
	if err != nil {
		return nil, loadCaseErr(req.CaseID, err)
	}

	from, ok := workflow.StageByID(record.CurrentStageID)
	if !ok {
		return nil, workflow.NewError(workflow.CodeStageNotFound, "case %s is at unknown stage id %d", record.ID, record.CurrentStageID)
	}

	to, ok := workflow.ParseStageRef(req.ToStage)
	if !ok {
		return nil, workflow.NewError(workflow.CodeStageNotFound, "stage %q not found", req.ToStage)
	}

	if req.FromStage != "" {
		expected, ok := workflow.ParseStageRef(req.FromStage)
		if !ok {
			return nil, workflow.NewError(workflow.CodeStageNotFound, "stage %q not found", req.FromStage)
		}
		if expected.ID != from.ID {
			return nil, workflow.NewError(workflow.CodeInvalidTransition,
				"case %s is at %s, not %s", record.ID, from.Code, expected.Code)
		}
	}

	edge, ok := workflow.FindEdge(from.Code, to.Code)
	if !ok {
		return nil, workflow.NewError(workflow.CodeInvalidTransition,
			"no transition from %s to %s", from.Code, to.Code)
	}

	gctx, err := guardContext(record.ID, from, to, req.Actor, req.Extra)
	if err != nil {
		return nil, err
	}

	return &plan{record: record, from: from, to: to, edge: edge, gctx: gctx}, nil
}

func guardContext(caseID string, from, to workflow.Stage, actor primary.Actor, extra map[string]any) (GuardContext, error) {
	if actor.ID == "" {
		return GuardContext{}, workflow.NewError(workflow.CodeInvalidGuardContext, "actor id is required")
	}
	if actor.Role == "" {
		return GuardContext{}, workflow.NewError(workflow.CodeInvalidGuardContext, "actor role is required")
	}
	role, ok := workflow.ParseRole(actor.Role)
	if !ok {
		return GuardContext{}, workflow.NewError(workflow.CodeInvalidGuardContext, "unknown actor role %q", actor.Role)
	}
	return GuardContext{
		CaseID:      caseID,
		ActorID:     actor.ID,
		ActorRole:   role,
		FromStageID: from.ID,
		ToStageID:   to.ID,
		Extra:       extra,
	}, nil
}

func (s *WorkflowServiceImpl) transition(ctx context.Context, req primary.TransitionRequest, action workflow.Action) (*primary.TransitionResponse, error) {
	var resp *primary.TransitionResponse

	err := s.store.WithTx(ctx, func(tx secondary.Repositories) error {
		p, err := resolve(ctx, tx.Cases(), true, req)
		if err != nil {
			return err
		}

		verdict, err := s.registry.Invoke(ctx, tx, p.edge.Guard, p.gctx, true)
		if err != nil {
			return err
		}
		if !verdict.Allowed {
			return workflow.Denied(verdict.Code, p.edge.Guard, verdict.Reason, verdict.Metadata)
		}

		scope := EffectScope{Repos: tx, Actor: req.Actor, StageID: p.from.ID}
		if err := s.executor.Execute(ctx, scope, verdict.Effects); err != nil {
			return err
		}

		at := s.now()
		moved, err := tx.Cases().UpdateStage(ctx, p.record.ID, p.from.ID, p.to.ID, at)
		if err != nil {
			return err
		}
		if !moved {
			return workflow.NewError(workflow.CodeInvalidTransition,
				"case %s is no longer at %s", p.record.ID, p.from.Code)
		}

		switch p.to.Code {
		case workflow.StageClosed:
			err = tx.Cases().UpdateStatus(ctx, p.record.ID, workflow.CaseStatusClosed, at)
		case workflow.StageRejected:
			err = tx.Cases().UpdateStatus(ctx, p.record.ID, workflow.CaseStatusRejected, at)
		}
		if err != nil {
			return err
		}

		detail := map[string]any{"guard": string(p.edge.Guard)}
		if req.Remarks != "" {
			detail["remarks"] = req.Remarks
		}
		if len(verdict.Metadata) > 0 {
			detail["metadata"] = verdict.Metadata
		}
		if err := s.audit.Append(ctx, tx.Audit(), auditEvent{
			CaseID:      p.record.ID,
			Actor:       req.Actor,
			Action:      action,
			FromStageID: p.from.ID,
			ToStageID:   p.to.ID,
			Detail:      detail,
		}); err != nil {
			return err
		}

		updated, err := tx.Cases().GetByID(ctx, p.record.ID)
		if err != nil {
			return err
		}

		resp = &primary.TransitionResponse{
			Case:          recordToCase(updated),
			FromStage:     string(p.from.Code),
			ToStage:       string(p.to.Code),
			GuardName:     string(p.edge.Guard),
			GuardReason:   verdict.Reason,
			GuardMetadata: verdict.Metadata,
			Action:        string(action),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("case transitioned",
		zap.String("case_id", req.CaseID),
		zap.String("from", resp.FromStage),
		zap.String("to", resp.ToStage),
		zap.String("action", resp.Action),
		zap.String("actor_id", req.Actor.ID))

	s.runHooks(ctx, resp)
	return resp, nil
}

func (s *WorkflowServiceImpl) runHooks(ctx context.Context, resp *primary.TransitionResponse) {
	for _, h := range s.hooks {
		if err := h.AfterTransition(ctx, resp); err != nil {
			s.logger.Error("post-transition hook failed",
				zap.String("hook", h.Name()),
				zap.String("case_id", resp.Case.ID),
				zap.Error(err))
		}
	}
}

// CheckTransition evaluates the guard for a move without writing anything.
func (s *WorkflowServiceImpl) CheckTransition(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionCheck, error) {
	p, err := resolve(ctx, s.store.Cases(), false, req)
	if err != nil {
		return nil, err
	}
	return s.check(ctx, p)
}

func (s *WorkflowServiceImpl) check(ctx context.Context, p *plan) (*primary.TransitionCheck, error) {
	verdict, err := s.registry.Invoke(ctx, s.store, p.edge.Guard, p.gctx, false)
	if err != nil {
		return nil, err
	}
	return &primary.TransitionCheck{
		CaseID:    p.record.ID,
		FromStage: string(p.from.Code),
		ToStage:   string(p.to.Code),
		GuardName: string(p.edge.Guard),
		Allowed:   verdict.Allowed,
		Reason:    verdict.Reason,
		Metadata:  verdict.Metadata,
	}, nil
}

// AvailableTransitions evaluates every outgoing edge of the case's current stage.
func (s *WorkflowServiceImpl) AvailableTransitions(ctx context.Context, caseID string, actor primary.Actor) ([]*primary.TransitionCheck, error) {
	record, err := s.store.Cases().GetByID(ctx, caseID)
	if err != nil {
		return nil, loadCaseErr(caseID, err)
	}
	from, ok := workflow.StageByID(record.CurrentStageID)
	if !ok {
		return nil, workflow.NewError(workflow.CodeStageNotFound, "case %s is at unknown stage id %d", record.ID, record.CurrentStageID)
	}

	var checks []*primary.TransitionCheck
	for _, edge := range workflow.EdgesFrom(from.Code) {
		to, _ := workflow.StageByCode(edge.To)
		gctx, err := guardContext(record.ID, from, to, actor, nil)
		if err != nil {
			return nil, err
		}
		c, err := s.check(ctx, &plan{record: record, from: from, to: to, edge: edge, gctx: gctx})
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, nil
}

// AttemptAutoProgress tries the one move a trigger maps to from the case's
// current stage. It never chains: a successful hop does not re-fire the trigger.
func (s *WorkflowServiceImpl) AttemptAutoProgress(ctx context.Context, req primary.AutoProgressRequest) (*primary.TransitionResponse, error) {
	trigger, ok := workflow.ParseTrigger(req.Trigger)
	if !ok {
		return nil, fmt.Errorf("unknown trigger %q", req.Trigger)
	}

	record, err := s.store.Cases().GetByID(ctx, req.CaseID)
	if err != nil {
		return nil, loadCaseErr(req.CaseID, err)
	}
	current, ok := workflow.StageByID(record.CurrentStageID)
	if !ok {
		return nil, workflow.NewError(workflow.CodeStageNotFound, "case %s is at unknown stage id %d", record.ID, record.CurrentStageID)
	}

	edge, ok := workflow.AutoCandidate(current.Code, trigger)
	if !ok {
		s.logger.Debug("no auto-progression candidate",
			zap.String("case_id", req.CaseID),
			zap.String("stage", string(current.Code)),
			zap.String("trigger", string(trigger)))
		return nil, nil
	}

	resp, err := s.transition(ctx, primary.TransitionRequest{
		CaseID:    req.CaseID,
		ToStage:   string(edge.To),
		FromStage: string(edge.From),
		Actor:     req.Actor,
		Remarks:   fmt.Sprintf("auto-progressed on %s", trigger),
	}, workflow.ActionAutoStageTransition)
	if errors.Is(err, workflow.ErrTransitionNotAllowed) || errors.Is(err, workflow.ErrInvalidTransition) {
		s.logger.Debug("auto-progression not taken",
			zap.String("case_id", req.CaseID),
			zap.String("to", string(edge.To)),
			zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

var _ primary.WorkflowService = (*WorkflowServiceImpl)(nil)
