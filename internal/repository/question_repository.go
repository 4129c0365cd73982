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

const questionColumns = `id, test_paper_id, question_text, options, correct_option_index, max_score, created_at, updated_at`

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db DBTX
}

func NewSQLXQuestionRepository(db DBTX) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	q := &domain.Question{
		ID:          m.ID,
		TestPaperID: m.TestPaperID,
		Text:        m.QuestionText,
		Options:     []domain.Option(m.Options),
		MaxScore:    m.MaxScore,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.CorrectOptionIndex.Valid {
		idx := int(m.CorrectOptionIndex.Int64)
		q.CorrectOptionIndex = &idx
	}
	return q
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	m := &models.Question{
		ID:           q.ID,
		TestPaperID:  q.TestPaperID,
		QuestionText: q.Text,
		Options:      models.OptionList(q.Options),
		MaxScore:     q.MaxScore,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
	if q.CorrectOptionIndex != nil {
		m.CorrectOptionIndex = sql.NullInt64{Int64: int64(*q.CorrectOptionIndex), Valid: true}
	}
	return m
}

func (r *sqlxQuestionRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	if q.ID == "" {
		q.ID = util.NewULID()
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	m := fromDomainQuestion(q)
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, query,
		m.ID, m.TestPaperID, m.QuestionText, m.Options, m.CorrectOptionIndex, m.MaxScore, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return writeError("create question", err)
	}
	return nil
}

func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)
	if err := db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return toDomainQuestion(&m), nil
}

func (r *sqlxQuestionRepository) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY test_paper_id, created_at, id`)
}

// ListQuestionsByTestPaper returns the questions of a paper in authoring order.
func (r *sqlxQuestionRepository) ListQuestionsByTestPaper(ctx context.Context, testPaperID string) ([]*domain.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions WHERE test_paper_id = ? ORDER BY created_at, id`, testPaperID)
}

func (r *sqlxQuestionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Question, error) {
	var rows []models.Question
	db := GetExecutor(ctx, r.db)
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	q.UpdatedAt = time.Now().UTC()
	m := fromDomainQuestion(q)

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`UPDATE questions SET
				test_paper_id = ?,
				question_text = ?,
				options = ?,
				correct_option_index = ?,
				max_score = ?,
				updated_at = ?
			WHERE id = ?`)
	result, err := db.ExecContext(ctx, query,
		m.TestPaperID, m.QuestionText, m.Options, m.CorrectOptionIndex, m.MaxScore, m.UpdatedAt, m.ID)
	if err != nil {
		return writeError("update question", err)
	}
	return expectAffected(result, "update question")
}

func (r *sqlxQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	db := GetExecutor(ctx, r.db)
	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return expectAffected(result, "delete question")
}

func (r *sqlxQuestionRepository) DeleteQuestionsByTestPaper(ctx context.Context, testPaperID string) error {
	db := GetExecutor(ctx, r.db)
	if _, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM questions WHERE test_paper_id = ?`), testPaperID); err != nil {
		return fmt.Errorf("failed to delete questions of test paper: %w", err)
	}
	return nil
}
