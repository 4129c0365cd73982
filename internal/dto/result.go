package dto

import (
	"encoding/json"
	"time"

	"mcq-platform/internal/domain"
)

// SubmitResultRequest records an attempt. user_answers maps question ids to
// selected option indexes and is graded as given.
// @Description Request body for submitting answers
type SubmitResultRequest struct {
	UserID      string          `json:"user_id"`
	TestPaperID string          `json:"test_paper_id"`
	UserAnswers json.RawMessage `json:"user_answers" swaggertype:"object"`
}

// CorrectResultRequest is an administrative correction. Answers without a
// final_score are re-graded.
// @Description Request body for correcting a result
type CorrectResultRequest struct {
	FinalScore  *float64        `json:"final_score,omitempty"`
	UserAnswers json.RawMessage `json:"user_answers,omitempty" swaggertype:"object"`
}

// @Description Recorded result
type ResultResponse struct {
	ID          string                `json:"id"`
	UserID      string                `json:"user_id"`
	TestPaperID string                `json:"test_paper_id"`
	FinalScore  float64               `json:"final_score"`
	Answers     domain.AnswerSnapshot `json:"answers"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// @Description Result of a graded submission
type SubmissionResponse struct {
	ResultResponse
	MaxScore   float64                  `json:"max_score"`
	Percentage float64                  `json:"percentage"`
	Outcomes   []domain.QuestionOutcome `json:"outcomes"`
}

// @Description Aggregate over the results of one test paper
type ResultSummaryResponse struct {
	TestPaperID      string  `json:"test_paper_id"`
	Attempts         int     `json:"attempts"`
	DistinctUsers    int     `json:"distinct_users"`
	AverageScore     float64 `json:"average_score"`
	HighestScore     float64 `json:"highest_score"`
	LowestScore      float64 `json:"lowest_score"`
	MaxPossibleScore float64 `json:"max_possible_score"`
	AveragePercent   float64 `json:"average_percent"`
}

func NewResultResponse(r *domain.Result) ResultResponse {
	answers := r.Answers
	if answers == nil {
		answers = domain.AnswerSnapshot{}
	}
	return ResultResponse{
		ID:          r.ID,
		UserID:      r.AccountID,
		TestPaperID: r.TestPaperID,
		FinalScore:  r.FinalScore,
		Answers:     answers,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func NewResultResponses(results []*domain.Result) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, NewResultResponse(r))
	}
	return out
}

func NewSubmissionResponse(r *domain.Result, score domain.Score) SubmissionResponse {
	return SubmissionResponse{
		ResultResponse: NewResultResponse(r),
		MaxScore:       score.MaxPossible,
		Percentage:     score.Percentage,
		Outcomes:       score.Outcomes,
	}
}

func NewResultSummaryResponse(s *domain.ResultSummary) ResultSummaryResponse {
	return ResultSummaryResponse{
		TestPaperID:      s.TestPaperID,
		Attempts:         s.Attempts,
		DistinctUsers:    s.DistinctAccounts,
		AverageScore:     s.AverageScore,
		HighestScore:     s.HighestScore,
		LowestScore:      s.LowestScore,
		MaxPossibleScore: s.MaxPossibleScore,
		AveragePercent:   s.AveragePercent,
	}
}
