package domain

import "time"

const (
	MinOptions      = 2
	MaxOptions      = 4
	DefaultMaxScore = 1.0
)

// Option is one choice of a question, addressed by its zero-based position.
type Option struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Question is a multiple-choice item. CorrectOptionIndex is nil when the
// author did not mark an answer; such a question can never award points.
type Question struct {
	ID                 string
	TestPaperID        string
	Text               string
	Options            []Option
	CorrectOptionIndex *int
	MaxScore           float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Scorable reports whether the question has an answer key pointing at one of its options.
func (q *Question) Scorable() bool {
	if q.CorrectOptionIndex == nil {
		return false
	}
	idx := *q.CorrectOptionIndex
	return idx >= 0 && idx < len(q.Options)
}

// OptionDraft is an option as submitted by an author.
type OptionDraft struct {
	Text      string
	IsCorrect bool
}

// BuildOptions assigns positions to the drafted options.
func BuildOptions(drafts []OptionDraft) []Option {
	options := make([]Option, len(drafts))
	for i, d := range drafts {
		options[i] = Option{Index: i, Text: d.Text}
	}
	return options
}

// ResolveAnswerKey picks the correct option index. An explicit index must address
// one of the drafts; otherwise the first draft flagged correct wins. Returns nil
// when neither is given.
func ResolveAnswerKey(drafts []OptionDraft, explicit *int) (*int, error) {
	if explicit != nil {
		if *explicit < 0 || *explicit >= len(drafts) {
			return nil, ValidationErrors{NewOutOfRangeError("correct_option_index", *explicit, 0, len(drafts)-1)}
		}
		idx := *explicit
		return &idx, nil
	}
	for i, d := range drafts {
		if d.IsCorrect {
			idx := i
			return &idx, nil
		}
	}
	return nil, nil
}
