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

const testPaperSelect = `SELECT tp.id, tp.name, tp.duration_minutes, tp.is_active, tp.created_at, tp.updated_at,
	(SELECT COUNT(*) FROM questions q WHERE q.test_paper_id = tp.id) AS questions_count
	FROM test_papers tp`

// sqlxTestPaperRepository implements domain.TestPaperRepository using sqlx.
type sqlxTestPaperRepository struct {
	db DBTX
}

func NewSQLXTestPaperRepository(db DBTX) domain.TestPaperRepository {
	return &sqlxTestPaperRepository{db: db}
}

func toDomainTestPaper(m *models.TestPaper) *domain.TestPaper {
	if m == nil {
		return nil
	}
	return &domain.TestPaper{
		ID:              m.ID,
		Name:            m.Name,
		DurationMinutes: m.DurationMinutes,
		IsActive:        m.IsActive,
		QuestionsCount:  m.QuestionsCount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *sqlxTestPaperRepository) CreateTestPaper(ctx context.Context, tp *domain.TestPaper) error {
	if tp.ID == "" {
		tp.ID = util.NewULID()
	}
	now := time.Now().UTC()
	tp.CreatedAt = now
	tp.UpdatedAt = now

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO test_papers (id, name, duration_minutes, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := db.ExecContext(ctx, query, tp.ID, tp.Name, tp.DurationMinutes, tp.IsActive, tp.CreatedAt, tp.UpdatedAt); err != nil {
		return writeError("create test paper", err)
	}
	return nil
}

func (r *sqlxTestPaperRepository) GetTestPaperByID(ctx context.Context, id string) (*domain.TestPaper, error) {
	var m models.TestPaper
	db := GetExecutor(ctx, r.db)
	if err := db.GetContext(ctx, &m, db.Rebind(testPaperSelect+` WHERE tp.id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test paper: %w", err)
	}
	return toDomainTestPaper(&m), nil
}

func (r *sqlxTestPaperRepository) ListTestPapers(ctx context.Context, activeOnly bool) ([]*domain.TestPaper, error) {
	var rows []models.TestPaper
	db := GetExecutor(ctx, r.db)

	var err error
	if activeOnly {
		err = db.SelectContext(ctx, &rows, db.Rebind(testPaperSelect+` WHERE tp.is_active = ? ORDER BY tp.created_at, tp.id`), true)
	} else {
		err = db.SelectContext(ctx, &rows, testPaperSelect+` ORDER BY tp.created_at, tp.id`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list test papers: %w", err)
	}

	papers := make([]*domain.TestPaper, 0, len(rows))
	for i := range rows {
		papers = append(papers, toDomainTestPaper(&rows[i]))
	}
	return papers, nil
}

func (r *sqlxTestPaperRepository) UpdateTestPaper(ctx context.Context, tp *domain.TestPaper) error {
	tp.UpdatedAt = time.Now().UTC()
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`UPDATE test_papers SET name = ?, duration_minutes = ?, is_active = ?, updated_at = ? WHERE id = ?`)
	result, err := db.ExecContext(ctx, query, tp.Name, tp.DurationMinutes, tp.IsActive, tp.UpdatedAt, tp.ID)
	if err != nil {
		return writeError("update test paper", err)
	}
	return expectAffected(result, "update test paper")
}

func (r *sqlxTestPaperRepository) DeleteTestPaper(ctx context.Context, id string) error {
	db := GetExecutor(ctx, r.db)
	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM test_papers WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete test paper: %w", err)
	}
	return expectAffected(result, "delete test paper")
}
