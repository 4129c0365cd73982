package handler

import (
	"strings"

	"mcq-platform/internal/dto"
	"mcq-platform/internal/logger"
	"mcq-platform/internal/middleware"
	"mcq-platform/internal/service"
	"mcq-platform/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	accounts  service.AccountService
	validator *validation.Validator
}

func NewAuthHandler(accounts service.AccountService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{accounts: accounts, validator: validator}
}

func toRegisterInput(req dto.RegisterRequest) service.RegisterInput {
	return service.RegisterInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		FullName: strings.TrimSpace(req.FullName),
	}
}

// Register creates a standard account.
// @Summary Register
// @Description Creates a standard account from an email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid input or email already registered"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateRegister(req)); err != nil {
		return err
	}

	account, err := h.accounts.Register(c.Context(), toRegisterInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAccountResponse(account))
}

// RegisterAdmin creates an administrator account.
// @Summary Register administrator
// @Description Creates an administrator account. Requires the configured admin secret.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminRegisterRequest true "Registration details and admin secret"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Admin secret mismatch"
// @Router /auth/admin/register [post]
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req dto.AdminRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateRegister(req.RegisterRequest)); err != nil {
		return err
	}

	account, err := h.accounts.RegisterAdmin(c.Context(), toRegisterInput(req.RegisterRequest), req.AdminSecret)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAccountResponse(account))
}

// CreateUser lets an administrator create an account with any role.
// @Summary Create account
// @Description Administrator-only account creation. Role defaults to STANDARD.
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /auth/admin/create-user [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	errs := h.validator.ValidateRegister(req.RegisterRequest)
	role, roleErrs := h.validator.ValidateRole(req.Role)
	if err := invalid(append(errs, roleErrs...)); err != nil {
		return err
	}

	account, err := h.accounts.CreateAccount(c.Context(), actor, toRegisterInput(req.RegisterRequest), role)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAccountResponse(account))
}

// Login exchanges credentials for an access token.
// @Summary Login
// @Description Accepts JSON {email, password} or a form with username and password.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid email or password"
// @Failure 429 {object} middleware.ErrorResponse "Too many login attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := invalid(h.validator.ValidateLogin(req)); err != nil {
		return err
	}

	res, err := h.accounts.Login(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresIn:   res.ExpiresIn,
	})
}

// Me returns the caller's profile.
// @Summary Current account
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Account was deleted"
// @Router /auth/me [get]
// @Router /auth/admin/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.GetAccount(c.Context(), actor, actor.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(account))
}

// GetUser returns a profile to its owner or an administrator.
// @Summary Get account
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /auth/users/{id} [get]
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.GetAccount(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(account))
}

// UpdateUser changes profile fields. Only administrators may change a role.
// @Summary Update account
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid field or phone number in use"
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /auth/users/{id} [patch]
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAccountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	upd, errs := h.validator.ValidateAccountUpdate(req)
	if err := invalid(errs); err != nil {
		return err
	}

	account, err := h.accounts.UpdateAccount(c.Context(), actor, c.Params("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAccountResponse(account))
}

// Logout is stateless: the client discards its token.
// @Summary Logout
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if p, ok := middleware.GetPrincipal(c); ok {
		logger.Get().Info("Logout acknowledged", zap.String("accountID", p.AccountID))
	}
	return c.JSON(dto.MessageResponse{Message: "Successfully logged out"})
}
