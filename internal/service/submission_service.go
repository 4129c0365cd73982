package service

import (
	"context"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
)

// Submission is a recorded result together with how it was graded.
type Submission struct {
	Result *domain.Result
	Score  domain.Score
}

// SubmissionService grades answer sheets and records them as results.
type SubmissionService interface {
	// Submit grades payload for accountID against testPaperID. Every call
	// records a new result.
	Submit(ctx context.Context, actor domain.Principal, accountID, testPaperID string, payload []byte) (*Submission, error)
}

type submissionService struct {
	accounts domain.AccountRepository
	papers   domain.TestPaperRepository
	results  domain.ResultRepository
	tm       domain.TransactionManager
	loader   *QuestionSetLoader
}

func NewSubmissionService(
	accounts domain.AccountRepository,
	papers domain.TestPaperRepository,
	results domain.ResultRepository,
	tm domain.TransactionManager,
	loader *QuestionSetLoader,
) SubmissionService {
	return &submissionService{accounts: accounts, papers: papers, results: results, tm: tm, loader: loader}
}

func (s *submissionService) Submit(ctx context.Context, actor domain.Principal, accountID, testPaperID string, payload []byte) (*Submission, error) {
	if err := domain.Authorize(actor, accountID, domain.OpSubmitAttempt); err != nil {
		return nil, err
	}

	if accountID != actor.AccountID {
		account, err := s.accounts.GetAccountByID(ctx, accountID)
		if err != nil {
			return nil, storeError("failed to load account", err)
		}
		if account == nil {
			return nil, domain.NewNotFoundError("account", accountID)
		}
	}

	paper, err := s.papers.GetTestPaperByID(ctx, testPaperID)
	if err != nil {
		return nil, storeError("failed to load test paper", err)
	}
	if paper == nil {
		return nil, domain.NewNotFoundError("test paper", testPaperID)
	}

	questions, err := s.loader.Load(ctx, testPaperID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError("questions for test paper", testPaperID)
	}

	sheet := domain.NormalizeAnswers(payload)
	score := domain.Grade(questions, sheet)

	result := &domain.Result{
		AccountID:   accountID,
		TestPaperID: testPaperID,
		FinalScore:  score.Total,
		Answers:     sheet.Snapshot(),
	}
	err = s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.results.CreateResult(txCtx, result)
	})
	if err != nil {
		return nil, storeError("failed to record result", err)
	}

	logger.Get().Info("Submission graded",
		zap.String("resultID", result.ID),
		zap.String("accountID", accountID),
		zap.String("testPaperID", testPaperID),
		zap.Float64("score", score.Total),
		zap.Float64("maxScore", score.MaxPossible),
		zap.Float64("percentage", score.Percentage),
		zap.Int("answered", len(sheet)),
	)
	return &Submission{Result: result, Score: score}, nil
}
