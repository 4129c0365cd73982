package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"mcq-platform/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPaperRowColumns = []string{"id", "name", "duration_minutes", "is_active", "created_at", "updated_at", "questions_count"}

func TestSQLXTestPaperRepository_CreateTestPaper(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXTestPaperRepository(db)

	tp := &domain.TestPaper{Name: "Algebra I", DurationMinutes: 45, IsActive: true}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO test_papers")).
		WithArgs(sqlmock.AnyArg(), "Algebra I", 45, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.CreateTestPaper(context.Background(), tp))
	assert.NotEmpty(t, tp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXTestPaperRepository_GetTestPaperByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXTestPaperRepository(db)
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(testPaperRowColumns).AddRow("tp1", "Algebra I", 60, true, now, now, 3)
		mock.ExpectQuery(regexp.QuoteMeta("FROM test_papers tp WHERE tp.id = ?")).
			WithArgs("tp1").
			WillReturnRows(rows)

		tp, err := repo.GetTestPaperByID(context.Background(), "tp1")
		require.NoError(t, err)
		require.NotNil(t, tp)
		assert.Equal(t, 3, tp.QuestionsCount)
		assert.True(t, tp.IsActive)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM test_papers tp WHERE tp.id = ?")).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		tp, err := repo.GetTestPaperByID(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, tp)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXTestPaperRepository_ListTestPapers(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXTestPaperRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tp.is_active = ?")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(testPaperRowColumns).AddRow("tp1", "A", 60, true, now, now, 0))

	active, err := repo.ListTestPapers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	mock.ExpectQuery(regexp.QuoteMeta("FROM test_papers tp ORDER BY")).
		WillReturnRows(sqlmock.NewRows(testPaperRowColumns).
			AddRow("tp1", "A", 60, true, now, now, 0).
			AddRow("tp2", "B", 30, false, now, now, 2))

	all, err := repo.ListTestPapers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.False(t, all[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXTestPaperRepository_UpdateAndDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXTestPaperRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE test_papers SET")).
		WithArgs("Renamed", 90, false, sqlmock.AnyArg(), "tp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateTestPaper(ctx, &domain.TestPaper{ID: "tp1", Name: "Renamed", DurationMinutes: 90}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM test_papers WHERE id = ?")).
		WithArgs("tp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteTestPaper(ctx, "tp1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
