package dto

import (
	"time"

	"mcq-platform/internal/domain"
)

// OptionRequest is one authored option.
type OptionRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

// CreateQuestionRequest creates a question. The answer key is correct_option_index
// when given, otherwise the first option flagged is_correct.
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	TestPaperID        string          `json:"test_paper_id"`
	QuestionText       string          `json:"question_text"`
	Options            []OptionRequest `json:"options"`
	CorrectOptionIndex *int            `json:"correct_option_index,omitempty"`
	MaxScore           *float64        `json:"max_score,omitempty"`
}

// UpdateQuestionRequest holds the optional fields of a question update.
// @Description Request body for updating a question
type UpdateQuestionRequest struct {
	TestPaperID        *string         `json:"test_paper_id,omitempty"`
	QuestionText       *string         `json:"question_text,omitempty"`
	Options            []OptionRequest `json:"options,omitempty"`
	CorrectOptionIndex *int            `json:"correct_option_index,omitempty"`
	MaxScore           *float64        `json:"max_score,omitempty"`
}

// OptionResponse numbers options from 1 for display; Index is the value to submit.
type OptionResponse struct {
	ID    int    `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// @Description Question. The answer key is only present for administrators.
type QuestionResponse struct {
	ID                 string           `json:"id"`
	TestPaperID        string           `json:"test_paper_id"`
	QuestionText       string           `json:"question_text"`
	Options            []OptionResponse `json:"options"`
	MaxScore           float64          `json:"max_score"`
	CorrectOptionIndex *int             `json:"correct_option_index,omitempty"`
	CorrectOptionID    *int             `json:"correct_option_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func ToOptionDrafts(options []OptionRequest) []domain.OptionDraft {
	if options == nil {
		return nil
	}
	drafts := make([]domain.OptionDraft, len(options))
	for i, o := range options {
		drafts[i] = domain.OptionDraft{Text: o.Text, IsCorrect: o.IsCorrect}
	}
	return drafts
}

func NewQuestionResponse(q *domain.Question, withAnswerKey bool) QuestionResponse {
	resp := QuestionResponse{
		ID:           q.ID,
		TestPaperID:  q.TestPaperID,
		QuestionText: q.Text,
		Options:      make([]OptionResponse, len(q.Options)),
		MaxScore:     q.MaxScore,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
	for i, o := range q.Options {
		resp.Options[i] = OptionResponse{ID: o.Index + 1, Index: o.Index, Text: o.Text}
	}
	if withAnswerKey && q.CorrectOptionIndex != nil {
		idx := *q.CorrectOptionIndex
		id := idx + 1
		resp.CorrectOptionIndex = &idx
		resp.CorrectOptionID = &id
	}
	return resp
}

func NewQuestionResponses(questions []*domain.Question, withAnswerKey bool) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, NewQuestionResponse(q, withAnswerKey))
	}
	return out
}
