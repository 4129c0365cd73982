package domain

// OutcomeReason explains how a single question contributed to a score.
type OutcomeReason string

const (
	OutcomeCorrect    OutcomeReason = "correct"
	OutcomeWrong      OutcomeReason = "wrong"
	OutcomeUnanswered OutcomeReason = "unanswered"
	// OutcomeUnscorable marks an answered question without a usable answer key.
	OutcomeUnscorable OutcomeReason = "unscorable"
)

type QuestionOutcome struct {
	QuestionID string        `json:"question_id"`
	Reason     OutcomeReason `json:"reason"`
	Awarded    float64       `json:"awarded"`
	MaxScore   float64       `json:"max_score"`
}

// Score is the result of grading one answer sheet against a question set.
type Score struct {
	Total       float64
	MaxPossible float64
	Percentage  float64
	Outcomes    []QuestionOutcome
}

// Grade scores sheet against questions. A question awards its MaxScore only when
// the submitted indicator is a number equal to its correct option index; every
// other case awards zero. Grade never fails.
func Grade(questions []*Question, sheet AnswerSheet) Score {
	var score Score
	score.Outcomes = make([]QuestionOutcome, 0, len(questions))

	for _, q := range questions {
		score.MaxPossible += q.MaxScore
		outcome := QuestionOutcome{QuestionID: q.ID, MaxScore: q.MaxScore}

		answer, answered := sheet[q.ID]
		switch {
		case !answered:
			outcome.Reason = OutcomeUnanswered
		case !q.Scorable():
			outcome.Reason = OutcomeUnscorable
		default:
			if idx, ok := answer.Index(); ok && idx == *q.CorrectOptionIndex {
				outcome.Reason = OutcomeCorrect
				outcome.Awarded = q.MaxScore
			} else {
				outcome.Reason = OutcomeWrong
			}
		}

		score.Total += outcome.Awarded
		score.Outcomes = append(score.Outcomes, outcome)
	}

	score.Percentage = Percentage(score.Total, score.MaxPossible)
	return score
}

// Percentage returns total as a share of max, or 0 when max is not positive.
func Percentage(total, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return total / max * 100
}
