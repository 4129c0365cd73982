package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/repository/models"
	"mcq-platform/internal/util"
)

const resultColumns = `id, account_id, test_paper_id, final_score, answers, created_at, updated_at`

// sqlxResultRepository records graded submissions.
type sqlxResultRepository struct {
	db DBTX
}

func NewSQLXResultRepository(db DBTX) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainResult(m *models.Result) *domain.Result {
	if m == nil {
		return nil
	}
	return &domain.Result{
		ID:          m.ID,
		AccountID:   m.AccountID,
		TestPaperID: m.TestPaperID,
		FinalScore:  m.FinalScore,
		Answers:     domain.AnswerSnapshot(m.Answers),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CreateResult assigns the identifier and creation time, then inserts.
func (r *sqlxResultRepository) CreateResult(ctx context.Context, res *domain.Result) error {
	res.ID = util.NewULID()
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO results (` + resultColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, query,
		res.ID, res.AccountID, res.TestPaperID, res.FinalScore, models.AnswerSnapshotColumn(res.Answers), res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return writeError("create result", err)
	}
	return nil
}

func (r *sqlxResultRepository) GetResultByID(ctx context.Context, id string) (*domain.Result, error) {
	var m models.Result
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`SELECT ` + resultColumns + ` FROM results WHERE id = ?`)
	if err := db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return toDomainResult(&m), nil
}

// ListResultsByAccount returns newest first.
func (r *sqlxResultRepository) ListResultsByAccount(ctx context.Context, accountID string) ([]*domain.Result, error) {
	return r.list(ctx, `SELECT `+resultColumns+` FROM results WHERE account_id = ? ORDER BY created_at DESC, id DESC`, accountID)
}

// ListResultsByTestPaper returns newest first.
func (r *sqlxResultRepository) ListResultsByTestPaper(ctx context.Context, testPaperID string) ([]*domain.Result, error) {
	return r.list(ctx, `SELECT `+resultColumns+` FROM results WHERE test_paper_id = ? ORDER BY created_at DESC, id DESC`, testPaperID)
}

func (r *sqlxResultRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Result, error) {
	var rows []models.Result
	db := GetExecutor(ctx, r.db)
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	results := make([]*domain.Result, 0, len(rows))
	for i := range rows {
		results = append(results, toDomainResult(&rows[i]))
	}
	return results, nil
}

// UpdateResult is the administrative correction path; it rewrites score and answers.
func (r *sqlxResultRepository) UpdateResult(ctx context.Context, res *domain.Result) error {
	res.UpdatedAt = time.Now().UTC()
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`UPDATE results SET final_score = ?, answers = ?, updated_at = ? WHERE id = ?`)
	result, err := db.ExecContext(ctx, query, res.FinalScore, models.AnswerSnapshotColumn(res.Answers), res.UpdatedAt, res.ID)
	if err != nil {
		return writeError("update result", err)
	}
	return expectAffected(result, "update result")
}

func (r *sqlxResultRepository) DeleteResult(ctx context.Context, id string) error {
	db := GetExecutor(ctx, r.db)
	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM results WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return expectAffected(result, "delete result")
}

func (r *sqlxResultRepository) DeleteResultsByTestPaper(ctx context.Context, testPaperID string) error {
	db := GetExecutor(ctx, r.db)
	if _, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM results WHERE test_paper_id = ?`), testPaperID); err != nil {
		return fmt.Errorf("failed to delete results of test paper: %w", err)
	}
	return nil
}
