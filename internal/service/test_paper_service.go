package service

import (
	"context"
	"strings"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
)

// TestPaperService manages test papers. Reads are open to any authenticated
// account; writes need OpManageTestPapers.
type TestPaperService interface {
	Create(ctx context.Context, actor domain.Principal, tp *domain.TestPaper) (*domain.TestPaper, error)
	Get(ctx context.Context, id string) (*domain.TestPaper, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.TestPaper, error)
	Update(ctx context.Context, actor domain.Principal, id string, upd domain.TestPaperUpdate) (*domain.TestPaper, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

type testPaperService struct {
	papers    domain.TestPaperRepository
	questions domain.QuestionRepository
	results   domain.ResultRepository
	tm        domain.TransactionManager
	loader    *QuestionSetLoader
}

func NewTestPaperService(
	papers domain.TestPaperRepository,
	questions domain.QuestionRepository,
	results domain.ResultRepository,
	tm domain.TransactionManager,
	loader *QuestionSetLoader,
) TestPaperService {
	return &testPaperService{papers: papers, questions: questions, results: results, tm: tm, loader: loader}
}

func (s *testPaperService) Create(ctx context.Context, actor domain.Principal, tp *domain.TestPaper) (*domain.TestPaper, error) {
	if err := domain.Authorize(actor, "", domain.OpManageTestPapers); err != nil {
		return nil, err
	}
	tp.Name = strings.TrimSpace(tp.Name)
	if tp.DurationMinutes == 0 {
		tp.DurationMinutes = domain.DefaultDurationMinutes
	}
	if err := s.papers.CreateTestPaper(ctx, tp); err != nil {
		return nil, storeError("failed to create test paper", err)
	}
	logger.Get().Info("Test paper created", zap.String("testPaperID", tp.ID), zap.String("by", actor.AccountID))
	return tp, nil
}

func (s *testPaperService) Get(ctx context.Context, id string) (*domain.TestPaper, error) {
	tp, err := s.papers.GetTestPaperByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to load test paper", err)
	}
	if tp == nil {
		return nil, domain.NewNotFoundError("test paper", id)
	}
	return tp, nil
}

func (s *testPaperService) List(ctx context.Context, activeOnly bool) ([]*domain.TestPaper, error) {
	papers, err := s.papers.ListTestPapers(ctx, activeOnly)
	if err != nil {
		return nil, storeError("failed to list test papers", err)
	}
	return papers, nil
}

func (s *testPaperService) Update(ctx context.Context, actor domain.Principal, id string, upd domain.TestPaperUpdate) (*domain.TestPaper, error) {
	if err := domain.Authorize(actor, "", domain.OpManageTestPapers); err != nil {
		return nil, err
	}
	tp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(tp)
	tp.Name = strings.TrimSpace(tp.Name)

	if err := s.papers.UpdateTestPaper(ctx, tp); err != nil {
		return nil, writeFailure("test paper", id, "failed to update test paper", err)
	}
	logger.Get().Info("Test paper updated", zap.String("testPaperID", id), zap.String("by", actor.AccountID))
	return tp, nil
}

// Delete removes the paper together with its questions and results.
func (s *testPaperService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := domain.Authorize(actor, "", domain.OpManageTestPapers); err != nil {
		return err
	}

	err := s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		tp, err := s.papers.GetTestPaperByID(txCtx, id)
		if err != nil {
			return storeError("failed to load test paper", err)
		}
		if tp == nil {
			return domain.NewNotFoundError("test paper", id)
		}
		if err := s.results.DeleteResultsByTestPaper(txCtx, id); err != nil {
			return storeError("failed to delete results of test paper", err)
		}
		if err := s.questions.DeleteQuestionsByTestPaper(txCtx, id); err != nil {
			return storeError("failed to delete questions of test paper", err)
		}
		if err := s.papers.DeleteTestPaper(txCtx, id); err != nil {
			return writeFailure("test paper", id, "failed to delete test paper", err)
		}
		return nil
	})
	if err != nil {
		return storeError("failed to delete test paper", err)
	}

	s.loader.Invalidate(ctx, id)
	logger.Get().Info("Test paper deleted", zap.String("testPaperID", id), zap.String("by", actor.AccountID))
	return nil
}
