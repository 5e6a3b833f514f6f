package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/landxfer/internal/core/intake"
	"github.com/example/landxfer/internal/core/workflow"
)

// SeedReferenceData writes the stage catalog and edge table into the stages
// and transitions tables. Existing rows are left as they are.
func SeedReferenceData(ctx context.Context, database *sql.DB, dialect Dialect) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stageInsert := dialect.Rebind("INSERT INTO stages (id, code, name, sort_order) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING")
	for _, s := range workflow.Stages() {
		if _, err := tx.ExecContext(ctx, stageInsert, s.ID, string(s.Code), s.Name, s.SortOrder); err != nil {
			return fmt.Errorf("seed stages: %w", err)
		}
	}

	transitionInsert := dialect.Rebind("INSERT INTO transitions (id, from_stage_id, to_stage_id, guard_name, sort_order) VALUES (?, ?, ?, ?, ?) ON CONFLICT DO NOTHING")
	for _, e := range workflow.Edges() {
		from, _ := workflow.StageByCode(e.From)
		to, _ := workflow.StageByCode(e.To)
		if _, err := tx.ExecContext(ctx, transitionInsert, e.SortOrder, from.ID, to.ID, string(e.Guard), e.SortOrder); err != nil {
			return fmt.Errorf("seed transitions: %w", err)
		}
	}

	return tx.Commit()
}

// SeedFixtures populates the database with development fixtures: three cases
// at intake with varying document completeness.
func SeedFixtures(ctx context.Context, database *sql.DB, dialect Dialect) error {
	now := time.Now().UTC()
	submitted := workflow.InitialStage().ID

	cases := []struct{ id, applicant, seller, buyer, plot string }{
		{"APP-0001", "Ayesha Malik", "CNIC-35202-1111111-1", "CNIC-35202-2222222-2", "PLOT-G9-114"},
		{"APP-0002", "Bilal Ahmed", "CNIC-35202-3333333-3", "CNIC-35202-4444444-4", "PLOT-F7-032"},
		{"APP-0003", "Sana Qureshi", "CNIC-35202-5555555-5", "CNIC-35202-6666666-6", "PLOT-E11-207"},
	}
	for _, c := range cases {
		if _, err := database.ExecContext(ctx, dialect.Rebind(
			"INSERT INTO cases (id, current_stage_id, status, applicant_name, seller_ref, buyer_ref, plot_ref, owner_ref, created_at, updated_at) VALUES (?, ?, 'active', ?, ?, ?, ?, ?, ?, ?)"),
			c.id, submitted, c.applicant, c.seller, c.buyer, c.plot, c.seller, now, now,
		); err != nil {
			return fmt.Errorf("seed cases: %w", err)
		}
	}

	// APP-0001 has every original seen; APP-0002 is missing the NOC original.
	docs := []struct {
		caseID string
		seen   func(docType string) bool
	}{
		{"APP-0001", func(string) bool { return true }},
		{"APP-0002", func(d string) bool { return d != intake.DocNOC }},
	}
	for _, d := range docs {
		for i, docType := range intake.RequiredDocuments() {
			seen := d.seen(docType)
			var seenBy sql.NullString
			var seenAt sql.NullTime
			if seen {
				seenBy = sql.NullString{String: "clerk-01", Valid: true}
				seenAt = sql.NullTime{Time: now, Valid: true}
			}
			if _, err := database.ExecContext(ctx, dialect.Rebind(
				"INSERT INTO case_documents (id, case_id, doc_type, original_seen, seen_by, seen_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
				fmt.Sprintf("DOC-%s-%02d", d.caseID, i+1), d.caseID, docType, seen, seenBy, seenAt, now,
			); err != nil {
				return fmt.Errorf("seed documents: %w", err)
			}
		}
	}

	return nil
}
