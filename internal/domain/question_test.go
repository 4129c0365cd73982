package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAnswerKey(t *testing.T) {
	drafts := []OptionDraft{{Text: "A"}, {Text: "B", IsCorrect: true}, {Text: "C", IsCorrect: true}}

	idx, err := ResolveAnswerKey(drafts, nil)
	require.NoError(t, err)
	require.NotNil(t, idx)
	assert.Equal(t, 1, *idx)

	idx, err = ResolveAnswerKey(drafts, intPtr(2))
	require.NoError(t, err)
	assert.Equal(t, 2, *idx)

	_, err = ResolveAnswerKey(drafts, intPtr(3))
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, CodeOutOfRange, verrs[0].Code)

	idx, err = ResolveAnswerKey([]OptionDraft{{Text: "A"}, {Text: "B"}}, nil)
	assert.NoError(t, err)
	assert.Nil(t, idx)
}

func TestBuildOptions(t *testing.T) {
	options := BuildOptions([]OptionDraft{{Text: "A"}, {Text: "B"}})
	assert.Equal(t, []Option{{Index: 0, Text: "A"}, {Index: 1, Text: "B"}}, options)
}

func TestQuestion_Scorable(t *testing.T) {
	q := &Question{Options: twoOptions()}
	assert.False(t, q.Scorable())
	q.CorrectOptionIndex = intPtr(1)
	assert.True(t, q.Scorable())
	q.CorrectOptionIndex = intPtr(-1)
	assert.False(t, q.Scorable())
}

func TestSummarizeResults(t *testing.T) {
	empty := SummarizeResults("tp1", nil, 3)
	assert.Equal(t, 0, empty.Attempts)
	assert.Equal(t, 0.0, empty.HighestScore)

	summary := SummarizeResults("tp1", []*Result{
		{AccountID: "a", FinalScore: 1},
		{AccountID: "a", FinalScore: 3},
		{AccountID: "b", FinalScore: 2},
	}, 3)
	assert.Equal(t, 3, summary.Attempts)
	assert.Equal(t, 2, summary.DistinctAccounts)
	assert.Equal(t, 2.0, summary.AverageScore)
	assert.Equal(t, 3.0, summary.HighestScore)
	assert.Equal(t, 1.0, summary.LowestScore)
	assert.InDelta(t, 66.67, summary.AveragePercent, 0.01)
}

func TestDomainError(t *testing.T) {
	err := NewNotFoundError("test paper", "tp1")
	assert.Equal(t, "test paper not found", err.Error())
	assert.Equal(t, "tp1", err.Context["id"])
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(assert.AnError, CodeNotFound))

	wrapped := NewInternalError("store failed", assert.AnError)
	assert.ErrorIs(t, wrapped, assert.AnError)
}
