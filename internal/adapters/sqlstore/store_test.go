package sqlstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/landxfer/internal/adapters/sqlstore"
	"github.com/example/landxfer/internal/core/workflow"
	"github.com/example/landxfer/internal/ports/secondary"
)

func TestStore_WithTx_Commit(t *testing.T) {
	store, testDB := setupTestStore(t)
	ctx := context.Background()
	seedCase(t, testDB, "APP-0001", workflow.StageSubmitted)

	err := store.WithTx(ctx, func(tx secondary.Repositories) error {
		return tx.Audit().Append(ctx, &secondary.AuditRecord{
			ID: "A-1", CaseID: "APP-0001", ActorID: "u1", ActorRole: "CLERK", Action: "CASE_CREATED",
		})
	})
	require.NoError(t, err)

	entries, err := store.Audit().ListByCase(ctx, "APP-0001")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_WithTx_RollsBackOnError(t *testing.T) {
	store, testDB := setupTestStore(t)
	ctx := context.Background()
	seedCase(t, testDB, "APP-0001", workflow.StageSubmitted)

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx secondary.Repositories) error {
		moved, err := tx.Cases().UpdateStage(ctx, "APP-0001",
			stageID(t, workflow.StageSubmitted), stageID(t, workflow.StageUnderScrutiny), fixedTime())
		require.NoError(t, err)
		require.True(t, moved)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Cases().GetByID(ctx, "APP-0001")
	require.NoError(t, err)
	assert.Equal(t, stageID(t, workflow.StageSubmitted), got.CurrentStageID, "stage change must be rolled back")
}

func TestStore_WithTx_RollsBackOnPanic(t *testing.T) {
	store, testDB := setupTestStore(t)
	ctx := context.Background()
	seedCase(t, testDB, "APP-0001", workflow.StageSubmitted)

	assert.Panics(t, func() {
		_ = store.WithTx(ctx, func(tx secondary.Repositories) error {
			_ = tx.Cases().UpdateOwner(ctx, "APP-0001", "BUYER-1", fixedTime())
			panic("guard exploded")
		})
	})

	got, err := store.Cases().GetByID(ctx, "APP-0001")
	require.NoError(t, err)
	assert.Equal(t, "SELLER-1", got.OwnerRef)
}

func TestStore_WithTx_Mock(t *testing.T) {
	t.Run("rolls back when fn fails", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO audit_log").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		store := sqlstore.NewStore(mockDB, sqliteDialect)
		err = store.WithTx(context.Background(), func(tx secondary.Repositories) error {
			return tx.Audit().Append(context.Background(), &secondary.AuditRecord{ID: "A-1", CaseID: "APP-0001"})
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to append audit entry")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports commit failure", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

		store := sqlstore.NewStore(mockDB, sqliteDialect)
		err = store.WithTx(context.Background(), func(secondary.Repositories) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		store := sqlstore.NewStore(mockDB, sqliteDialect)
		called := false
		err = store.WithTx(context.Background(), func(secondary.Repositories) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCaseRepository_PostgresPlaceholders(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("UPDATE cases SET previous_stage_id = current_stage_id, current_stage_id = $1, updated_at = $2 WHERE id = $3 AND current_stage_id = $4").
		WithArgs(2, fixedTime(), "APP-0001", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := sqlstore.NewCaseRepository(mockDB, postgresDialect)
	moved, err := repo.UpdateStage(context.Background(), "APP-0001", 1, 2, fixedTime())
	require.NoError(t, err)
	assert.False(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
