package app

import (
	"context"
	"fmt"

	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/ports/secondary"
)

// VerifyReferenceData compares the seeded stages and transitions tables with
// the compiled catalog and edge table. It returns one line per drift.
func VerifyReferenceData(ctx context.Context, ref secondary.ReferenceDataRepository) ([]string, error) {
	stages, err := ref.ListStages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	transitions, err := ref.ListTransitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}

	var drift []string

	seeded := make(map[int]*secondary.StageRecord, len(stages))
	for _, s := range stages {
		seeded[s.ID] = s
	}
	for _, want := range workflow.Stages() {
		got, ok := seeded[want.ID]
		if !ok {
			drift = append(drift, fmt.Sprintf("stage %d (%s) not seeded", want.ID, want.Code))
			continue
		}
		if got.Code != string(want.Code) {
			drift = append(drift, fmt.Sprintf("stage %d seeded as %s, expected %s", want.ID, got.Code, want.Code))
		}
		delete(seeded, want.ID)
	}
	for id, s := range seeded {
		drift = append(drift, fmt.Sprintf("stage %d (%s) is not in the catalog", id, s.Code))
	}

	type pair struct{ from, to int }
	rows := make(map[pair]string, len(transitions))
	for _, t := range transitions {
		rows[pair{t.FromStageID, t.ToStageID}] = t.GuardName
	}
	for _, e := range workflow.Edges() {
		from, _ := workflow.StageByCode(e.From)
		to, _ := workflow.StageByCode(e.To)
		guard, ok := rows[pair{from.ID, to.ID}]
		if !ok {
			drift = append(drift, fmt.Sprintf("edge %s -> %s not seeded", e.From, e.To))
			continue
		}
		if guard != string(e.Guard) {
			drift = append(drift, fmt.Sprintf("edge %s -> %s seeded with %s, expected %s", e.From, e.To, guard, e.Guard))
		}
		delete(rows, pair{from.ID, to.ID})
	}
	for p, guard := range rows {
		drift = append(drift, fmt.Sprintf("transition %d -> %d (%s) is not in the edge table", p.from, p.to, guard))
	}

	return drift, nil
}
