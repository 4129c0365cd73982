package handler

import (
	"bytes"
	"fmt"
	"strings"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/dto"
	"mcq-platform/internal/service"
	"mcq-platform/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ResultHandler serves /results.
type ResultHandler struct {
	results     service.ResultService
	submissions service.SubmissionService
	validator   *validation.Validator
}

func NewResultHandler(results service.ResultService, submissions service.SubmissionService, validator *validation.Validator) *ResultHandler {
	return &ResultHandler{results: results, submissions: submissions, validator: validator}
}

// Submit godoc
// @Summary Submit answers
// @Description Grades user_answers against the paper's answer key and records the result for user_id.
// @Tags results
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitResultRequest true "Submission"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Submitting for another account"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/submit [post]
func (h *ResultHandler) Submit(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.SubmitResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateSubmitResult(req)); err != nil {
		return err
	}

	sub, err := h.submissions.Submit(c.Context(), actor,
		strings.TrimSpace(req.UserID), strings.TrimSpace(req.TestPaperID), req.UserAnswers)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSubmissionResponse(sub.Result, sub.Score))
}

// MyResults godoc
// @Summary Caller's results
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ResultResponse
// @Router /results/my-results [get]
func (h *ResultHandler) MyResults(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	results, err := h.results.ListByAccount(c.Context(), actor, actor.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResultResponses(results))
}

// ByUser godoc
// @Summary Results of an account
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.ResultResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /results/users/{id} [get]
func (h *ResultHandler) ByUser(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	results, err := h.results.ListByAccount(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResultResponses(results))
}

// ByTestPaper godoc
// @Summary Results of a test paper
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Test paper ID"
// @Success 200 {array} dto.ResultResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/test-papers/{id} [get]
func (h *ResultHandler) ByTestPaper(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	results, err := h.results.ListByTestPaper(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResultResponses(results))
}

// Summary godoc
// @Summary Score summary of a test paper
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Test paper ID"
// @Success 200 {object} dto.ResultSummaryResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/test-papers/{id}/summary [get]
func (h *ResultHandler) Summary(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	summary, err := h.results.Summary(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResultSummaryResponse(summary))
}

// Report godoc
// @Summary PDF report of a test paper's results
// @Tags results
// @Security ApiKeyAuth
// @Produce application/pdf
// @Param id path string true "Test paper ID"
// @Success 200 {file} file
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/test-papers/{id}/report.pdf [get]
func (h *ResultHandler) Report(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	var buf bytes.Buffer
	if err := h.results.Report(c.Context(), actor, id, &buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "results-"+id+".pdf"))
	return c.Send(buf.Bytes())
}

// Get godoc
// @Summary Get a result
// @Tags results
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/{id} [get]
func (h *ResultHandler) Get(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	result, err := h.results.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResultResponse(result))
}

// Correct godoc
// @Summary Correct a result
// @Description Sets final_score, or replaces user_answers and re-grades them when no score is given.
// @Tags results
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Result ID"
// @Param request body dto.CorrectResultRequest true "Correction"
// @Success 200 {object} dto.ResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/{id} [patch]
func (h *ResultHandler) Correct(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CorrectResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateCorrectResult(req)); err != nil {
		return err
	}

	corr := domain.ResultCorrection{FinalScore: req.FinalScore}
	if len(req.UserAnswers) > 0 {
		corr.Answers = domain.NormalizeAnswers(req.UserAnswers).Snapshot()
	}

	result, err := h.results.Correct(c.Context(), actor, c.Params("id"), corr)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResultResponse(result))
}

// Delete godoc
// @Summary Delete a result
// @Tags results
// @Security ApiKeyAuth
// @Param id path string true "Result ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/{id} [delete]
func (h *ResultHandler) Delete(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.results.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
