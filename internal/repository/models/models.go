package models

import (
	"database/sql"
	"time"
)

// Account is a row of the accounts table.
type Account struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	FullName     sql.NullString `db:"full_name"`
	PhoneNumber  sql.NullString `db:"phone_number"` // unique when present
	DateOfBirth  sql.NullTime   `db:"date_of_birth"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// TestPaper is a row of the test_papers table. QuestionsCount is computed.
type TestPaper struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	DurationMinutes int       `db:"duration_minutes"`
	IsActive        bool      `db:"is_active"`
	QuestionsCount  int       `db:"questions_count"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Question is a row of the questions table.
type Question struct {
	ID                 string        `db:"id"`
	TestPaperID        string        `db:"test_paper_id"`
	QuestionText       string        `db:"question_text"`
	Options            OptionList    `db:"options"`
	CorrectOptionIndex sql.NullInt64 `db:"correct_option_index"`
	MaxScore           float64       `db:"max_score"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

// Result is a row of the results table.
type Result struct {
	ID          string               `db:"id"`
	AccountID   string               `db:"account_id"`
	TestPaperID string               `db:"test_paper_id"`
	FinalScore  float64              `db:"final_score"`
	Answers     AnswerSnapshotColumn `db:"answers"`
	CreatedAt   time.Time            `db:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at"`
}
