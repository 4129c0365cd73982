package service

import (
	"context"
	"errors"
	"testing"

	"mcq-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type submissionFixture struct {
	svc       SubmissionService
	accounts  *MockAccountRepository
	papers    *MockTestPaperRepository
	questions *MockQuestionRepository
	results   *MockResultRepository
	tm        *MockTransactionManager
}

func newSubmissionFixture() *submissionFixture {
	f := &submissionFixture{
		accounts:  new(MockAccountRepository),
		papers:    new(MockTestPaperRepository),
		questions: new(MockQuestionRepository),
		results:   new(MockResultRepository),
		tm:        new(MockTransactionManager),
	}
	f.svc = NewSubmissionService(f.accounts, f.papers, f.results, f.tm, noCache(f.questions))
	return f
}

func threeQuestionPaper() []*domain.Question {
	opts := []domain.Option{{Index: 0, Text: "a"}, {Index: 1, Text: "b"}, {Index: 2, Text: "c"}}
	return []*domain.Question{
		{ID: "q1", TestPaperID: "tp1", Options: opts, CorrectOptionIndex: intPtr(0), MaxScore: 1},
		{ID: "q2", TestPaperID: "tp1", Options: opts, CorrectOptionIndex: intPtr(2), MaxScore: 1},
		{ID: "q3", TestPaperID: "tp1", Options: opts, CorrectOptionIndex: intPtr(1), MaxScore: 1},
	}
}

func TestSubmissionService_Submit_GradesAndRecords(t *testing.T) {
	f := newSubmissionFixture()
	f.papers.On("GetTestPaperByID", mock.Anything, "tp1").Return(&domain.TestPaper{ID: "tp1"}, nil)
	f.questions.On("ListQuestionsByTestPaper", mock.Anything, "tp1").Return(threeQuestionPaper(), nil)
	f.tm.On("WithTransaction", mock.Anything).Return(nil)
	f.results.On("CreateResult", mock.Anything, mock.MatchedBy(func(r *domain.Result) bool {
		return r.AccountID == "alice" && r.TestPaperID == "tp1" && r.FinalScore == 1 && len(r.Answers) == 3
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Result).ID = "r1"
	})

	payload := []byte(`{"user_answers": {"q1": 0, "q2": 1, "q3": "1"}}`)
	sub, err := f.svc.Submit(context.Background(), alicePrincipal, "alice", "tp1", payload)
	require.NoError(t, err)

	assert.Equal(t, "r1", sub.Result.ID)
	assert.Equal(t, 1.0, sub.Score.Total)
	assert.Equal(t, 3.0, sub.Score.MaxPossible)
	assert.InDelta(t, 33.33, sub.Score.Percentage, 0.01)
	f.accounts.AssertNotCalled(t, "GetAccountByID", mock.Anything, mock.Anything)
	f.results.AssertExpectations(t)
}

func TestSubmissionService_Submit_ForOtherAccount(t *testing.T) {
	t.Run("StandardForbidden", func(t *testing.T) {
		f := newSubmissionFixture()
		_, err := f.svc.Submit(context.Background(), bobPrincipal, "alice", "tp1", []byte(`{}`))
		assert.True(t, domain.HasCode(err, domain.CodeForbidden))
		f.papers.AssertNotCalled(t, "GetTestPaperByID", mock.Anything, mock.Anything)
	})

	t.Run("AdminUnknownAccount", func(t *testing.T) {
		f := newSubmissionFixture()
		f.accounts.On("GetAccountByID", mock.Anything, "ghost").Return(nil, nil)
		_, err := f.svc.Submit(context.Background(), adminPrincipal, "ghost", "tp1", []byte(`{}`))
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})
}

func TestSubmissionService_Submit_NotFound(t *testing.T) {
	t.Run("Paper", func(t *testing.T) {
		f := newSubmissionFixture()
		f.papers.On("GetTestPaperByID", mock.Anything, "ghost").Return(nil, nil)
		_, err := f.svc.Submit(context.Background(), alicePrincipal, "alice", "ghost", []byte(`{}`))
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})

	t.Run("EmptyPaper", func(t *testing.T) {
		f := newSubmissionFixture()
		f.papers.On("GetTestPaperByID", mock.Anything, "tp1").Return(&domain.TestPaper{ID: "tp1"}, nil)
		f.questions.On("ListQuestionsByTestPaper", mock.Anything, "tp1").Return([]*domain.Question{}, nil)
		_, err := f.svc.Submit(context.Background(), alicePrincipal, "alice", "tp1", []byte(`{}`))
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
		f.results.AssertNotCalled(t, "CreateResult", mock.Anything, mock.Anything)
	})
}

func TestSubmissionService_Submit_MalformedPayloadScoresZero(t *testing.T) {
	f := newSubmissionFixture()
	f.papers.On("GetTestPaperByID", mock.Anything, "tp1").Return(&domain.TestPaper{ID: "tp1"}, nil)
	f.questions.On("ListQuestionsByTestPaper", mock.Anything, "tp1").Return(threeQuestionPaper(), nil)
	f.tm.On("WithTransaction", mock.Anything).Return(nil)
	f.results.On("CreateResult", mock.Anything, mock.Anything).Return(nil)

	sub, err := f.svc.Submit(context.Background(), alicePrincipal, "alice", "tp1", []byte(`[0, 1, 2]`))
	require.NoError(t, err)
	assert.Zero(t, sub.Score.Total)
	assert.Empty(t, sub.Result.Answers)
	for _, o := range sub.Score.Outcomes {
		assert.Equal(t, domain.OutcomeUnanswered, o.Reason)
	}
}

func TestSubmissionService_Submit_StoreFailure(t *testing.T) {
	f := newSubmissionFixture()
	f.papers.On("GetTestPaperByID", mock.Anything, "tp1").Return(&domain.TestPaper{ID: "tp1"}, nil)
	f.questions.On("ListQuestionsByTestPaper", mock.Anything, "tp1").Return(threeQuestionPaper(), nil)
	f.tm.On("WithTransaction", mock.Anything).Return(nil)
	f.results.On("CreateResult", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := f.svc.Submit(context.Background(), alicePrincipal, "alice", "tp1", []byte(`{"q1": 0}`))
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
}
