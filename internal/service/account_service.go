package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"mcq-platform/internal/config"
	"mcq-platform/internal/domain"
	"mcq-platform/internal/logger"

	"go.uber.org/zap"
)

const TokenTypeBearer = "bearer"

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principal domain.Principal, ttl time.Duration) (string, error)
}

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginResult is handed back to a client after a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	Account     *domain.Account
}

// AccountService covers registration, login and profile management.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	RegisterAdmin(ctx context.Context, in RegisterInput, adminSecret string) (*domain.Account, error)
	CreateAccount(ctx context.Context, actor domain.Principal, in RegisterInput, role domain.Role) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetAccount(ctx context.Context, actor domain.Principal, id string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, actor domain.Principal, id string, upd domain.AccountUpdate) (*domain.Account, error)
}

type accountService struct {
	repo   domain.AccountRepository
	hasher PasswordHasher
	tokens TokenIssuer
	cfg    config.AuthConfig
}

func NewAccountService(repo domain.AccountRepository, hasher PasswordHasher, tokens TokenIssuer, cfg config.AuthConfig) AccountService {
	return &accountService{repo: repo, hasher: hasher, tokens: tokens, cfg: cfg}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	return s.create(ctx, in, domain.RoleStandard)
}

// RegisterAdmin creates an administrator when adminSecret matches the configured
// value exactly. An unset configured secret disables the endpoint.
func (s *accountService) RegisterAdmin(ctx context.Context, in RegisterInput, adminSecret string) (*domain.Account, error) {
	if s.cfg.AdminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(adminSecret), []byte(s.cfg.AdminSecret)) != 1 {
		logger.Get().Warn("Rejected administrator registration", zap.String("email", in.Email))
		return nil, domain.NewForbiddenError("invalid admin secret")
	}
	return s.create(ctx, in, domain.RoleAdministrator)
}

func (s *accountService) CreateAccount(ctx context.Context, actor domain.Principal, in RegisterInput, role domain.Role) (*domain.Account, error) {
	if err := domain.Authorize(actor, "", domain.OpCreateAccount); err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleStandard
	}
	return s.create(ctx, in, role)
}

func (s *accountService) create(ctx context.Context, in RegisterInput, role domain.Role) (*domain.Account, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	account := &domain.Account{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if domain.HasCode(err, domain.CodeConflict) {
			return nil, domain.NewConflictError("email already registered", err).WithContext("email", account.Email)
		}
		return nil, storeError("failed to create account", err)
	}

	logger.Get().Info("Account created", zap.String("accountID", account.ID), zap.String("role", string(role)))
	return account, nil
}

// Login verifies the credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error after the same amount of hashing work.
func (s *accountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, storeError("failed to look up account", err)
	}

	hash := ""
	if account != nil {
		hash = account.PasswordHash
	}
	if !s.hasher.Verify(password, hash) || account == nil {
		logger.Get().Info("Login rejected", zap.Bool("knownAccount", account != nil))
		return nil, domain.NewUnauthorizedError("invalid email or password", nil)
	}

	ttl := s.cfg.JWT.AccessTokenTTL
	token, err := s.tokens.Issue(account.Principal(), ttl)
	if err != nil {
		return nil, domain.NewInternalError("failed to issue access token", err)
	}

	logger.Get().Info("Login succeeded", zap.String("accountID", account.ID))
	return &LoginResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(ttl / time.Second),
		Account:     account,
	}, nil
}

// GetAccount returns a profile. The owner is known from the id, so access is
// checked before the lookup.
func (s *accountService) GetAccount(ctx context.Context, actor domain.Principal, id string) (*domain.Account, error) {
	if err := domain.Authorize(actor, id, domain.OpReadProfile); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *accountService) UpdateAccount(ctx context.Context, actor domain.Principal, id string, upd domain.AccountUpdate) (*domain.Account, error) {
	if err := domain.Authorize(actor, id, domain.OpUpdateProfile); err != nil {
		return nil, err
	}
	if upd.Role != nil {
		if err := domain.Authorize(actor, "", domain.OpChangeRole); err != nil {
			return nil, err
		}
		if !upd.Role.Valid() {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("role", string(*upd.Role))}
		}
	}

	account, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FullName != nil {
		account.FullName = strings.TrimSpace(*upd.FullName)
	}
	if upd.PhoneNumber != nil {
		account.PhoneNumber = strings.TrimSpace(*upd.PhoneNumber)
	}
	if upd.DateOfBirth != nil {
		dob := *upd.DateOfBirth
		account.DateOfBirth = &dob
	}
	if upd.Role != nil {
		account.Role = *upd.Role
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		if domain.HasCode(err, domain.CodeConflict) {
			return nil, domain.NewConflictError("phone number already in use", err)
		}
		return nil, writeFailure("account", id, "failed to update account", err)
	}

	logger.Get().Info("Account updated", zap.String("accountID", id), zap.String("by", actor.AccountID))
	return account, nil
}

func (s *accountService) load(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, storeError("failed to load account", err)
	}
	if account == nil {
		return nil, domain.NewNotFoundError("account", id)
	}
	return account, nil
}
