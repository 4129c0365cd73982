package service

import (
	"context"
	"strings"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
)

// QuestionInput is an authored question before it is stored.
type QuestionInput struct {
	TestPaperID        string
	Text               string
	Options            []domain.OptionDraft
	CorrectOptionIndex *int
	MaxScore           *float64
}

// QuestionPatch holds the fields of a question update. Nil fields are kept;
// non-nil Options replace the option list and re-derive the answer key.
// TestPaperID moves the question to another paper.
type QuestionPatch struct {
	TestPaperID        *string
	Text               *string
	Options            []domain.OptionDraft
	CorrectOptionIndex *int
	MaxScore           *float64
}

type QuestionService interface {
	Create(ctx context.Context, actor domain.Principal, in QuestionInput) (*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	// List returns every question, or those of one paper when testPaperID is set.
	List(ctx context.Context, testPaperID string) ([]*domain.Question, error)
	Update(ctx context.Context, actor domain.Principal, id string, patch QuestionPatch) (*domain.Question, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

type questionService struct {
	questions domain.QuestionRepository
	papers    domain.TestPaperRepository
	loader    *QuestionSetLoader
}

func NewQuestionService(questions domain.QuestionRepository, papers domain.TestPaperRepository, loader *QuestionSetLoader) QuestionService {
	return &questionService{questions: questions, papers: papers, loader: loader}
}

func (s *questionService) Create(ctx context.Context, actor domain.Principal, in QuestionInput) (*domain.Question, error) {
	if err := domain.Authorize(actor, "", domain.OpManageQuestions); err != nil {
		return nil, err
	}
	if err := s.requirePaper(ctx, in.TestPaperID); err != nil {
		return nil, err
	}

	key, err := domain.ResolveAnswerKey(in.Options, in.CorrectOptionIndex)
	if err != nil {
		return nil, err
	}
	q := &domain.Question{
		TestPaperID:        in.TestPaperID,
		Text:               strings.TrimSpace(in.Text),
		Options:            domain.BuildOptions(in.Options),
		CorrectOptionIndex: key,
		MaxScore:           domain.DefaultMaxScore,
	}
	if in.MaxScore != nil {
		q.MaxScore = *in.MaxScore
	}

	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		return nil, storeError("failed to create question", err)
	}
	s.loader.Invalidate(ctx, q.TestPaperID)

	if !q.Scorable() {
		logger.Get().Warn("Question stored without an answer key", zap.String("questionID", q.ID))
	}
	return q, nil
}

func (s *questionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.questions.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to load question", err)
	}
	if q == nil {
		return nil, domain.NewNotFoundError("question", id)
	}
	return q, nil
}

func (s *questionService) List(ctx context.Context, testPaperID string) ([]*domain.Question, error) {
	if testPaperID == "" {
		questions, err := s.questions.ListQuestions(ctx)
		if err != nil {
			return nil, storeError("failed to list questions", err)
		}
		return questions, nil
	}
	return s.loader.Load(ctx, testPaperID)
}

func (s *questionService) Update(ctx context.Context, actor domain.Principal, id string, patch QuestionPatch) (*domain.Question, error) {
	if err := domain.Authorize(actor, "", domain.OpManageQuestions); err != nil {
		return nil, err
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previousPaperID := q.TestPaperID
	if patch.TestPaperID != nil && *patch.TestPaperID != q.TestPaperID {
		if err := s.requirePaper(ctx, *patch.TestPaperID); err != nil {
			return nil, err
		}
		q.TestPaperID = *patch.TestPaperID
	}
	if patch.Text != nil {
		q.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.MaxScore != nil {
		q.MaxScore = *patch.MaxScore
	}
	switch {
	case patch.Options != nil:
		key, err := domain.ResolveAnswerKey(patch.Options, patch.CorrectOptionIndex)
		if err != nil {
			return nil, err
		}
		q.Options = domain.BuildOptions(patch.Options)
		q.CorrectOptionIndex = key
	case patch.CorrectOptionIndex != nil:
		idx := *patch.CorrectOptionIndex
		if idx < 0 || idx >= len(q.Options) {
			return nil, domain.ValidationErrors{domain.NewOutOfRangeError("correct_option_index", idx, 0, len(q.Options)-1)}
		}
		q.CorrectOptionIndex = &idx
	}

	if err := s.questions.UpdateQuestion(ctx, q); err != nil {
		return nil, writeFailure("question", id, "failed to update question", err)
	}
	if previousPaperID != q.TestPaperID {
		s.loader.Invalidate(ctx, previousPaperID, q.TestPaperID)
		logger.Get().Info("Question moved",
			zap.String("questionID", id),
			zap.String("from", previousPaperID),
			zap.String("to", q.TestPaperID),
		)
	} else {
		s.loader.Invalidate(ctx, q.TestPaperID)
	}
	logger.Get().Info("Question updated", zap.String("questionID", id), zap.String("by", actor.AccountID))
	return q, nil
}

func (s *questionService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := domain.Authorize(actor, "", domain.OpManageQuestions); err != nil {
		return err
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		return writeFailure("question", id, "failed to delete question", err)
	}
	s.loader.Invalidate(ctx, q.TestPaperID)
	logger.Get().Info("Question deleted", zap.String("questionID", id), zap.String("by", actor.AccountID))
	return nil
}

func (s *questionService) requirePaper(ctx context.Context, testPaperID string) error {
	tp, err := s.papers.GetTestPaperByID(ctx, testPaperID)
	if err != nil {
		return storeError("failed to load test paper", err)
	}
	if tp == nil {
		return domain.NewNotFoundError("test paper", testPaperID)
	}
	return nil
}
