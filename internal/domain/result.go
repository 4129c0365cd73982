package domain

import (
	"math"
	"time"
)

// Result is one graded submission. Answers is the snapshot that was graded,
// not a reference to the live questions.
type Result struct {
	ID          string
	AccountID   string
	TestPaperID string
	FinalScore  float64
	Answers     AnswerSnapshot
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResultCorrection is an administrative change to a stored result.
type ResultCorrection struct {
	FinalScore *float64
	Answers    AnswerSnapshot
}

// ResultSummary aggregates the results recorded for one test paper.
type ResultSummary struct {
	TestPaperID      string
	Attempts         int
	DistinctAccounts int
	AverageScore     float64
	HighestScore     float64
	LowestScore      float64
	MaxPossibleScore float64
	AveragePercent   float64
}

// SummarizeResults folds results into a ResultSummary. maxPossible is the
// current sum of question scores for the paper.
func SummarizeResults(testPaperID string, results []*Result, maxPossible float64) ResultSummary {
	summary := ResultSummary{TestPaperID: testPaperID, MaxPossibleScore: maxPossible}
	if len(results) == 0 {
		return summary
	}

	accounts := make(map[string]struct{}, len(results))
	total := 0.0
	summary.LowestScore = math.Inf(1)
	summary.HighestScore = math.Inf(-1)
	for _, r := range results {
		accounts[r.AccountID] = struct{}{}
		total += r.FinalScore
		summary.LowestScore = math.Min(summary.LowestScore, r.FinalScore)
		summary.HighestScore = math.Max(summary.HighestScore, r.FinalScore)
	}

	summary.Attempts = len(results)
	summary.DistinctAccounts = len(accounts)
	summary.AverageScore = total / float64(len(results))
	summary.AveragePercent = Percentage(summary.AverageScore, maxPossible)
	return summary
}
