package dto

import (
	"time"

	"mcq-platform/internal/domain"
)

// CreateTestPaperRequest creates a test paper. Duration defaults to 60 minutes
// and new papers are active unless stated otherwise.
// @Description Request body for creating a test paper
type CreateTestPaperRequest struct {
	Name            string `json:"name"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

// UpdateTestPaperRequest holds the optional fields of a test paper update.
// @Description Request body for updating a test paper
type UpdateTestPaperRequest struct {
	Name            *string `json:"name,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// @Description Test paper
type TestPaperResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	QuestionsCount  int       `json:"questions_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewTestPaperResponse(tp *domain.TestPaper) TestPaperResponse {
	return TestPaperResponse{
		ID:              tp.ID,
		Name:            tp.Name,
		DurationMinutes: tp.DurationMinutes,
		IsActive:        tp.IsActive,
		QuestionsCount:  tp.QuestionsCount,
		CreatedAt:       tp.CreatedAt,
		UpdatedAt:       tp.UpdatedAt,
	}
}

func NewTestPaperResponses(papers []*domain.TestPaper) []TestPaperResponse {
	out := make([]TestPaperResponse, 0, len(papers))
	for _, tp := range papers {
		out = append(out, NewTestPaperResponse(tp))
	}
	return out
}
