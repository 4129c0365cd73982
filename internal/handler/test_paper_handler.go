package handler

import (
	"mcq-platform/internal/dto"
	"mcq-platform/internal/service"
	"mcq-platform/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TestPaperHandler serves /test-papers.
type TestPaperHandler struct {
	papers      service.TestPaperService
	submissions service.SubmissionService
	validator   *validation.Validator
}

func NewTestPaperHandler(papers service.TestPaperService, submissions service.SubmissionService, validator *validation.Validator) *TestPaperHandler {
	return &TestPaperHandler{papers: papers, submissions: submissions, validator: validator}
}

// Create godoc
// @Summary Create a test paper
// @Tags test-papers
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTestPaperRequest true "Test paper"
// @Success 201 {object} dto.TestPaperResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /test-papers [post]
func (h *TestPaperHandler) Create(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CreateTestPaperRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tp, errs := h.validator.ValidateCreateTestPaper(req)
	if err := invalid(errs); err != nil {
		return err
	}

	created, err := h.papers.Create(c.Context(), actor, tp)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTestPaperResponse(created))
}

// List godoc
// @Summary List test papers
// @Tags test-papers
// @Security ApiKeyAuth
// @Produce json
// @Param active query bool false "Only active papers"
// @Success 200 {array} dto.TestPaperResponse
// @Router /test-papers [get]
func (h *TestPaperHandler) List(c *fiber.Ctx) error {
	papers, err := h.papers.List(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTestPaperResponses(papers))
}

// Get godoc
// @Summary Get a test paper
// @Tags test-papers
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Test paper ID"
// @Success 200 {object} dto.TestPaperResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /test-papers/{id} [get]
func (h *TestPaperHandler) Get(c *fiber.Ctx) error {
	tp, err := h.papers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTestPaperResponse(tp))
}

// Update godoc
// @Summary Update a test paper
// @Tags test-papers
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Test paper ID"
// @Param request body dto.UpdateTestPaperRequest true "Fields to change"
// @Success 200 {object} dto.TestPaperResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /test-papers/{id} [put]
func (h *TestPaperHandler) Update(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTestPaperRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	upd, errs := h.validator.ValidateUpdateTestPaper(req)
	if err := invalid(errs); err != nil {
		return err
	}

	tp, err := h.papers.Update(c.Context(), actor, c.Params("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTestPaperResponse(tp))
}

// Delete godoc
// @Summary Delete a test paper
// @Description Removes the paper together with its questions and results.
// @Tags test-papers
// @Security ApiKeyAuth
// @Param id path string true "Test paper ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /test-papers/{id} [delete]
func (h *TestPaperHandler) Delete(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.papers.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit godoc
// @Summary Submit answers for the caller
// @Description The body maps question ids to selected option indexes, either directly or under "user_answers".
// @Tags test-papers
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Test paper ID"
// @Param answers body object true "Answers"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 404 {object} middleware.ErrorResponse "Test paper missing or has no questions"
// @Router /test-papers/{id}/submit [post]
func (h *TestPaperHandler) Submit(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	sub, err := h.submissions.Submit(c.Context(), actor, actor.AccountID, c.Params("id"), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSubmissionResponse(sub.Result, sub.Score))
}
