package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func twoOptions() []Option {
	return []Option{{Index: 0, Text: "A"}, {Index: 1, Text: "B"}}
}

// paperFixture is two questions worth 1.0 and 2.0 with answer keys 0 and 1.
func paperFixture() []*Question {
	return []*Question{
		{ID: "q1", Options: twoOptions(), CorrectOptionIndex: intPtr(0), MaxScore: 1.0},
		{ID: "q2", Options: twoOptions(), CorrectOptionIndex: intPtr(1), MaxScore: 2.0},
	}
}

func TestGrade_PartialCredit(t *testing.T) {
	score := Grade(paperFixture(), NormalizeAnswers([]byte(`{"q1": 0, "q2": 0}`)))

	assert.Equal(t, 1.0, score.Total)
	assert.Equal(t, 3.0, score.MaxPossible)
	assert.InDelta(t, 33.33, score.Percentage, 0.01)
	require.Len(t, score.Outcomes, 2)
	assert.Equal(t, OutcomeCorrect, score.Outcomes[0].Reason)
	assert.Equal(t, OutcomeWrong, score.Outcomes[1].Reason)
}

func TestGrade_NoAnswers(t *testing.T) {
	score := Grade(paperFixture(), NormalizeAnswers([]byte(`{}`)))

	assert.Equal(t, 0.0, score.Total)
	assert.Equal(t, 3.0, score.MaxPossible)
	assert.Equal(t, 0.0, score.Percentage)
	for _, o := range score.Outcomes {
		assert.Equal(t, OutcomeUnanswered, o.Reason)
	}
}

func TestGrade_WrappedPayloadScoresLikeDirect(t *testing.T) {
	direct := Grade(paperFixture(), NormalizeAnswers([]byte(`{"q2": 1}`)))
	wrapped := Grade(paperFixture(), NormalizeAnswers([]byte(`{"user_answers": {"q2": 1}}`)))

	assert.Equal(t, 2.0, direct.Total)
	assert.Equal(t, direct, wrapped)
}

func TestGrade_OutcomeReasons(t *testing.T) {
	questions := []*Question{
		{ID: "correct", Options: twoOptions(), CorrectOptionIndex: intPtr(1), MaxScore: 1},
		{ID: "wrong", Options: twoOptions(), CorrectOptionIndex: intPtr(1), MaxScore: 1},
		{ID: "string", Options: twoOptions(), CorrectOptionIndex: intPtr(1), MaxScore: 1},
		{ID: "bool", Options: twoOptions(), CorrectOptionIndex: intPtr(1), MaxScore: 1},
		{ID: "nokey", Options: twoOptions(), CorrectOptionIndex: nil, MaxScore: 1},
		{ID: "badkey", Options: twoOptions(), CorrectOptionIndex: intPtr(5), MaxScore: 1},
		{ID: "missing", Options: twoOptions(), CorrectOptionIndex: intPtr(0), MaxScore: 1},
	}
	sheet := NormalizeAnswers([]byte(`{
		"correct": 1,
		"wrong": 0,
		"string": "1",
		"bool": true,
		"nokey": 0,
		"badkey": 5
	}`))

	score := Grade(questions, sheet)

	reasons := make(map[string]OutcomeReason)
	for _, o := range score.Outcomes {
		reasons[o.QuestionID] = o.Reason
	}
	assert.Equal(t, map[string]OutcomeReason{
		"correct": OutcomeCorrect,
		"wrong":   OutcomeWrong,
		"string":  OutcomeWrong,
		"bool":    OutcomeWrong,
		"nokey":   OutcomeUnscorable,
		"badkey":  OutcomeUnscorable,
		"missing": OutcomeUnanswered,
	}, reasons)
	assert.Equal(t, 1.0, score.Total)
	assert.Equal(t, 7.0, score.MaxPossible)
}

func TestGrade_Deterministic(t *testing.T) {
	sheet := NormalizeAnswers([]byte(`{"q1": 0, "q2": 1}`))
	first := Grade(paperFixture(), sheet)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Grade(paperFixture(), sheet))
	}
	assert.Equal(t, 3.0, first.Total)
	assert.Equal(t, 100.0, first.Percentage)
}

func TestGrade_TotalWithinBounds(t *testing.T) {
	payloads := []string{`{}`, `{"q1": 0}`, `{"q1": 1, "q2": 1}`, `{"q1": 0, "q2": 1, "extra": 3}`, `[]`}
	for _, p := range payloads {
		score := Grade(paperFixture(), NormalizeAnswers([]byte(p)))
		assert.GreaterOrEqual(t, score.Total, 0.0, p)
		assert.LessOrEqual(t, score.Total, score.MaxPossible, p)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
}
