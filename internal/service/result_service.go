package service

import (
	"context"
	"io"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
)

// ResultService exposes recorded results to their owners and administrators.
type ResultService interface {
	// Get checks existence before ownership, so a missing id is NOT_FOUND for everyone.
	Get(ctx context.Context, actor domain.Principal, id string) (*domain.Result, error)
	ListByAccount(ctx context.Context, actor domain.Principal, accountID string) ([]*domain.Result, error)
	ListByTestPaper(ctx context.Context, actor domain.Principal, testPaperID string) ([]*domain.Result, error)
	// Correct applies an administrative change. New answers without a new
	// score are re-graded against the current questions.
	Correct(ctx context.Context, actor domain.Principal, id string, corr domain.ResultCorrection) (*domain.Result, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
	Summary(ctx context.Context, actor domain.Principal, testPaperID string) (*domain.ResultSummary, error)
	// Report writes the summary and every result of a paper as a PDF document.
	Report(ctx context.Context, actor domain.Principal, testPaperID string, w io.Writer) error
}

type resultService struct {
	results domain.ResultRepository
	papers  domain.TestPaperRepository
	loader  *QuestionSetLoader
}

func NewResultService(results domain.ResultRepository, papers domain.TestPaperRepository, loader *QuestionSetLoader) ResultService {
	return &resultService{results: results, papers: papers, loader: loader}
}

func (s *resultService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.Result, error) {
	result, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, result.AccountID, domain.OpReadResults); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *resultService) ListByAccount(ctx context.Context, actor domain.Principal, accountID string) ([]*domain.Result, error) {
	if err := domain.Authorize(actor, accountID, domain.OpReadResults); err != nil {
		return nil, err
	}
	results, err := s.results.ListResultsByAccount(ctx, accountID)
	if err != nil {
		return nil, storeError("failed to list results", err)
	}
	return results, nil
}

func (s *resultService) ListByTestPaper(ctx context.Context, actor domain.Principal, testPaperID string) ([]*domain.Result, error) {
	if err := domain.Authorize(actor, "", domain.OpReviewResults); err != nil {
		return nil, err
	}
	if _, err := s.paper(ctx, testPaperID); err != nil {
		return nil, err
	}
	results, err := s.results.ListResultsByTestPaper(ctx, testPaperID)
	if err != nil {
		return nil, storeError("failed to list results", err)
	}
	return results, nil
}

func (s *resultService) Correct(ctx context.Context, actor domain.Principal, id string, corr domain.ResultCorrection) (*domain.Result, error) {
	if err := domain.Authorize(actor, "", domain.OpCorrectResult); err != nil {
		return nil, err
	}
	result, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if corr.Answers != nil {
		result.Answers = corr.Answers
		if corr.FinalScore == nil {
			questions, err := s.loader.Load(ctx, result.TestPaperID)
			if err != nil {
				return nil, err
			}
			result.FinalScore = domain.Grade(questions, corr.Answers.Sheet()).Total
		}
	}
	if corr.FinalScore != nil {
		result.FinalScore = *corr.FinalScore
	}

	if err := s.results.UpdateResult(ctx, result); err != nil {
		return nil, writeFailure("result", id, "failed to update result", err)
	}
	logger.Get().Info("Result corrected",
		zap.String("resultID", id),
		zap.Float64("score", result.FinalScore),
		zap.String("by", actor.AccountID),
	)
	return result, nil
}

func (s *resultService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := domain.Authorize(actor, "", domain.OpDeleteResult); err != nil {
		return err
	}
	if err := s.results.DeleteResult(ctx, id); err != nil {
		return writeFailure("result", id, "failed to delete result", err)
	}
	logger.Get().Info("Result deleted", zap.String("resultID", id), zap.String("by", actor.AccountID))
	return nil
}

func (s *resultService) Summary(ctx context.Context, actor domain.Principal, testPaperID string) (*domain.ResultSummary, error) {
	results, err := s.ListByTestPaper(ctx, actor, testPaperID)
	if err != nil {
		return nil, err
	}
	questions, err := s.loader.Load(ctx, testPaperID)
	if err != nil {
		return nil, err
	}

	maxPossible := 0.0
	for _, q := range questions {
		maxPossible += q.MaxScore
	}
	summary := domain.SummarizeResults(testPaperID, results, maxPossible)
	return &summary, nil
}

func (s *resultService) Report(ctx context.Context, actor domain.Principal, testPaperID string, w io.Writer) error {
	summary, err := s.Summary(ctx, actor, testPaperID)
	if err != nil {
		return err
	}
	paper, err := s.paper(ctx, testPaperID)
	if err != nil {
		return err
	}
	results, err := s.results.ListResultsByTestPaper(ctx, testPaperID)
	if err != nil {
		return storeError("failed to list results", err)
	}

	if err := writeResultReport(w, paper, summary, results); err != nil {
		return domain.NewInternalError("failed to render report", err)
	}
	return nil
}

func (s *resultService) load(ctx context.Context, id string) (*domain.Result, error) {
	result, err := s.results.GetResultByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to load result", err)
	}
	if result == nil {
		return nil, domain.NewNotFoundError("result", id)
	}
	return result, nil
}

func (s *resultService) paper(ctx context.Context, id string) (*domain.TestPaper, error) {
	tp, err := s.papers.GetTestPaperByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to load test paper", err)
	}
	if tp == nil {
		return nil, domain.NewNotFoundError("test paper", id)
	}
	return tp, nil
}
