package domain

import "time"

const DefaultDurationMinutes = 60

// TestPaper is a timed collection of questions. It owns its questions.
type TestPaper struct {
	ID              string
	Name            string
	DurationMinutes int
	IsActive        bool
	QuestionsCount  int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TestPaperUpdate carries the optional fields of a test paper update.
type TestPaperUpdate struct {
	Name            *string
	DurationMinutes *int
	IsActive        *bool
}

func (u TestPaperUpdate) Apply(tp *TestPaper) {
	if u.Name != nil {
		tp.Name = *u.Name
	}
	if u.DurationMinutes != nil {
		tp.DurationMinutes = *u.DurationMinutes
	}
	if u.IsActive != nil {
		tp.IsActive = *u.IsActive
	}
}
