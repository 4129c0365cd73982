package dto

import (
	"time"

	"mcq-platform/internal/domain"
)

const DateLayout = "2006-01-02"

// RegisterRequest is the body of a self-registration.
// @Description Request body for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// AdminRegisterRequest additionally carries the shared administrator secret.
// @Description Request body for administrator registration
type AdminRegisterRequest struct {
	RegisterRequest
	AdminSecret string `json:"admin_secret"`
}

// CreateUserRequest is used by administrators to create accounts.
// @Description Request body for administrator-created accounts
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role,omitempty"`
}

// LoginRequest accepts JSON {email,password} or a form with username/password.
// @Description Login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse is returned after a successful login.
// @Description Bearer access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UpdateAccountRequest holds the optional profile fields. Omitted fields are unchanged.
// @Description Profile update
type UpdateAccountRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty" example:"1990-05-17"`
	Role        *string `json:"role,omitempty"`
}

// AccountResponse is the public view of an account. The password hash is never exposed.
// @Description Account profile
type AccountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Role:        string(a.Role),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.DateOfBirth != nil {
		resp.DateOfBirth = a.DateOfBirth.Format(DateLayout)
	}
	return resp
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
