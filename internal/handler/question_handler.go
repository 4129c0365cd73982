package handler

import (
	"strings"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/dto"
	"mcq-platform/internal/service"
	"mcq-platform/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler serves /questions. Answer keys are only rendered for callers
// the access policy lets see them.
type QuestionHandler struct {
	questions service.QuestionService
	validator *validation.Validator
}

func NewQuestionHandler(questions service.QuestionService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{questions: questions, validator: validator}
}

func showAnswerKey(p domain.Principal) bool {
	return domain.CanAccess(p.Role, p.AccountID, "", domain.OpViewAnswerKey) == domain.Allow
}

// Create godoc
// @Summary Create a question
// @Tags questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Test paper not found"
// @Router /questions [post]
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CreateQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateCreateQuestion(req)); err != nil {
		return err
	}

	q, err := h.questions.Create(c.Context(), actor, service.QuestionInput{
		TestPaperID:        strings.TrimSpace(req.TestPaperID),
		Text:               strings.TrimSpace(req.QuestionText),
		Options:            dto.ToOptionDrafts(req.Options),
		CorrectOptionIndex: req.CorrectOptionIndex,
		MaxScore:           req.MaxScore,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuestionResponse(q, showAnswerKey(actor)))
}

// List godoc
// @Summary List questions
// @Tags questions
// @Security ApiKeyAuth
// @Produce json
// @Param test_paper_id query string false "Only questions of this test paper"
// @Success 200 {array} dto.QuestionResponse
// @Router /questions [get]
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	questions, err := h.questions.List(c.Context(), strings.TrimSpace(c.Query("test_paper_id")))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions, showAnswerKey(actor)))
}

// Get godoc
// @Summary Get a question
// @Tags questions
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	q, err := h.questions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(q, showAnswerKey(actor)))
}

// Update godoc
// @Summary Update a question
// @Description Replacing options re-derives the answer key unless correct_option_index is given. Setting test_paper_id moves the question.
// @Tags questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateUpdateQuestion(req)); err != nil {
		return err
	}

	patch := service.QuestionPatch{
		Options:            dto.ToOptionDrafts(req.Options),
		CorrectOptionIndex: req.CorrectOptionIndex,
		MaxScore:           req.MaxScore,
	}
	if req.QuestionText != nil {
		text := strings.TrimSpace(*req.QuestionText)
		patch.Text = &text
	}
	if req.TestPaperID != nil {
		paperID := strings.TrimSpace(*req.TestPaperID)
		patch.TestPaperID = &paperID
	}

	q, err := h.questions.Update(c.Context(), actor, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(q, showAnswerKey(actor)))
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.questions.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
