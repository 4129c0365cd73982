package handler_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/dto"
	"mcq-platform/internal/handler"
	"mcq-platform/internal/service"
	"mcq-platform/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResultApp(p domain.Principal, results *MockResultService, subs *MockSubmissionService) *fiber.App {
	h := handler.NewResultHandler(results, subs, validation.NewValidator())
	app := setupApp(p)
	app.Post("/results/submit", h.Submit)
	app.Get("/results/my-results", h.MyResults)
	app.Get("/results/users/:id", h.ByUser)
	app.Get("/results/test-papers/:id/summary", h.Summary)
	app.Get("/results/test-papers/:id/report.pdf", h.Report)
	app.Get("/results/test-papers/:id", h.ByTestPaper)
	app.Get("/results/:id", h.Get)
	app.Patch("/results/:id", h.Correct)
	app.Delete("/results/:id", h.Delete)
	return app
}

func TestResultHandler_Submit(t *testing.T) {
	t.Run("ForAnotherAccountForbidden", func(t *testing.T) {
		subs := &MockSubmissionService{
			SubmitFunc: func(ctx context.Context, actor domain.Principal, accountID, testPaperID string, payload []byte) (*service.Submission, error) {
				return nil, domain.Authorize(actor, accountID, domain.OpSubmitAttempt)
			},
		}
		app := newResultApp(alicePrincipal, &MockResultService{}, subs)

		req := map[string]interface{}{"user_id": "bob", "test_paper_id": "tp1", "user_answers": map[string]int{"q1": 0}}
		resp, err := app.Test(jsonRequest(fiber.MethodPost, "/results/submit", req))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("PassesAnswersThrough", func(t *testing.T) {
		subs := &MockSubmissionService{
			SubmitFunc: func(ctx context.Context, actor domain.Principal, accountID, testPaperID string, payload []byte) (*service.Submission, error) {
				assert.Equal(t, "alice", accountID)
				assert.JSONEq(t, `{"q1": 0}`, string(payload))
				return &service.Submission{
					Result: &domain.Result{ID: "r1", AccountID: accountID, TestPaperID: testPaperID},
					Score:  domain.Score{MaxPossible: 1},
				}, nil
			},
		}
		app := newResultApp(alicePrincipal, &MockResultService{}, subs)

		req := map[string]interface{}{"user_id": "alice", "test_paper_id": "tp1", "user_answers": map[string]int{"q1": 0}}
		resp, err := app.Test(jsonRequest(fiber.MethodPost, "/results/submit", req))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("MissingTestPaper", func(t *testing.T) {
		app := newResultApp(alicePrincipal, &MockResultService{}, &MockSubmissionService{})

		resp, err := app.Test(jsonRequest(fiber.MethodPost, "/results/submit", map[string]string{"user_id": "alice"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestResultHandler_Lists(t *testing.T) {
	results := &MockResultService{
		ListByAccountFunc: func(ctx context.Context, actor domain.Principal, accountID string) ([]*domain.Result, error) {
			if err := domain.Authorize(actor, accountID, domain.OpReadResults); err != nil {
				return nil, err
			}
			return []*domain.Result{{ID: "r1", AccountID: accountID, TestPaperID: "tp1", FinalScore: 1}}, nil
		},
		ListByTestPaperFunc: func(ctx context.Context, actor domain.Principal, testPaperID string) ([]*domain.Result, error) {
			return nil, domain.Authorize(actor, "", domain.OpReviewResults)
		},
	}
	app := newResultApp(alicePrincipal, results, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/results/my-results", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var mine []dto.ResultResponse
	decode(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "alice", mine[0].UserID)
	assert.NotNil(t, mine[0].Answers)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/results/users/bob", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/results/test-papers/tp1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestResultHandler_Get_NotFoundBeforeForbidden(t *testing.T) {
	results := &MockResultService{
		GetFunc: func(ctx context.Context, actor domain.Principal, id string) (*domain.Result, error) {
			return nil, domain.NewNotFoundError("result", id)
		},
	}
	app := newResultApp(alicePrincipal, results, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/results/r404", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResultHandler_Correct(t *testing.T) {
	t.Run("AnswersAreNormalized", func(t *testing.T) {
		results := &MockResultService{
			CorrectFunc: func(ctx context.Context, actor domain.Principal, id string, corr domain.ResultCorrection) (*domain.Result, error) {
				assert.Nil(t, corr.FinalScore)
				require.Len(t, corr.Answers, 2)
				assert.Equal(t, "q1", corr.Answers[0].QuestionID)
				return &domain.Result{ID: id, AccountID: "alice", TestPaperID: "tp1", FinalScore: 1, Answers: corr.Answers}, nil
			},
		}
		app := newResultApp(adminPrincipal, results, nil)

		req := map[string]interface{}{"user_answers": map[string]interface{}{"user_answers": map[string]int{"q2": 1, "q1": 0}}}
		resp, err := app.Test(jsonRequest(fiber.MethodPatch, "/results/r1", req))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("ScoreOnly", func(t *testing.T) {
		results := &MockResultService{
			CorrectFunc: func(ctx context.Context, actor domain.Principal, id string, corr domain.ResultCorrection) (*domain.Result, error) {
				require.NotNil(t, corr.FinalScore)
				assert.Equal(t, 4.5, *corr.FinalScore)
				assert.Nil(t, corr.Answers)
				return &domain.Result{ID: id, FinalScore: *corr.FinalScore}, nil
			},
		}
		app := newResultApp(adminPrincipal, results, nil)

		resp, err := app.Test(jsonRequest(fiber.MethodPatch, "/results/r1", map[string]float64{"final_score": 4.5}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body dto.ResultResponse
		decode(t, resp, &body)
		assert.Equal(t, 4.5, body.FinalScore)
	})

	t.Run("EmptyCorrection", func(t *testing.T) {
		app := newResultApp(adminPrincipal, &MockResultService{}, nil)

		resp, err := app.Test(jsonRequest(fiber.MethodPatch, "/results/r1", map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestResultHandler_SummaryAndReport(t *testing.T) {
	results := &MockResultService{
		SummaryFunc: func(ctx context.Context, actor domain.Principal, testPaperID string) (*domain.ResultSummary, error) {
			return &domain.ResultSummary{TestPaperID: testPaperID, Attempts: 3, DistinctAccounts: 2, AverageScore: 1.5, MaxPossibleScore: 2}, nil
		},
		ReportFunc: func(ctx context.Context, actor domain.Principal, testPaperID string, w io.Writer) error {
			_, err := w.Write([]byte("%PDF-1.3 fake"))
			return err
		},
	}
	app := newResultApp(adminPrincipal, results, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/results/test-papers/tp1/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var summary dto.ResultSummaryResponse
	decode(t, resp, &summary)
	assert.Equal(t, 3, summary.Attempts)
	assert.Equal(t, 2, summary.DistinctUsers)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/results/test-papers/tp1/report.pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(data))
}

func TestResultHandler_Delete(t *testing.T) {
	results := &MockResultService{
		DeleteFunc: func(ctx context.Context, actor domain.Principal, id string) error {
			return domain.Authorize(actor, "", domain.OpDeleteResult)
		},
	}

	resp, err := newResultApp(adminPrincipal, results, nil).Test(httptest.NewRequest(fiber.MethodDelete, "/results/r1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = newResultApp(alicePrincipal, results, nil).Test(httptest.NewRequest(fiber.MethodDelete, "/results/r1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
