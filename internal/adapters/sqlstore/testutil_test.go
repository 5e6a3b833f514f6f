// Package sqlstore_test contains integration tests for the SQL repositories.
//
// Every test database is built by db.OpenMemory, which applies the
// authoritative schema from db.GetSchemaSQL() and seeds the stage and
// transition reference data. Do not hardcode CREATE TABLE statements here;
// use setupTestDB() and the seed* helpers.
package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/example/landxfer/internal/adapters/sqlstore"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/db"
	"github.com/example/landxfer/internal/ports/secondary"
)

var sqliteDialect = db.DialectFor(db.DriverSQLite)

// setupTestDB creates an in-memory database with the authoritative schema
// and reference data.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupTestStore wraps setupTestDB in a Store.
func setupTestStore(t *testing.T) (*sqlstore.Store, *sql.DB) {
	t.Helper()
	testDB := setupTestDB(t)
	return sqlstore.NewStore(testDB, sqliteDialect), testDB
}

func stageID(t *testing.T, code workflow.StageCode) int {
	t.Helper()
	s, ok := workflow.StageByCode(code)
	if !ok {
		t.Fatalf("unknown stage %s", code)
	}
	return s.ID
}

// seedCase inserts a case at the given stage and returns its ID.
func seedCase(t *testing.T, testDB *sql.DB, id string, stage workflow.StageCode) string {
	t.Helper()
	if id == "" {
		id = "APP-0001"
	}
	repo := sqlstore.NewCaseRepository(testDB, sqliteDialect)
	err := repo.Create(context.Background(), &secondary.CaseRecord{
		ID:             id,
		CurrentStageID: stageID(t, stage),
		Status:         workflow.CaseStatusActive,
		ApplicantName:  "Test Applicant",
		SellerRef:      "SELLER-1",
		BuyerRef:       "BUYER-1",
		PlotRef:        "PLOT-1",
		OwnerRef:       "SELLER-1",
		CreatedAt:      time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
	return id
}

var postgresDialect = db.DialectFor(db.DriverPostgres)

func fixedTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}
