package auth

import (
	"errors"
	"fmt"
	"time"

	"mcq-platform/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrCredentialRejected is the parent of every verification failure.
	ErrCredentialRejected = errors.New("credential rejected")
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrCredentialRejected)
	ErrTokenInvalid       = fmt.Errorf("%w: token invalid", ErrCredentialRejected)
)

var signingMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// TokenCodec issues and verifies signed access tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	now    func() time.Time
}

type Option func(*TokenCodec)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCodec) { c.now = now }
}

// WithIssuer sets the iss claim on issued tokens and requires it on verify.
func WithIssuer(issuer string) Option {
	return func(c *TokenCodec) { c.issuer = issuer }
}

func NewTokenCodec(secret string, algorithm string, opts ...Option) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is empty")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	c := &TokenCodec{
		secret: []byte(secret),
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for principal that expires ttl from now.
func (c *TokenCodec) Issue(principal domain.Principal, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	now := c.now()
	claims := Claims{
		AccountID: principal.AccountID,
		Email:     principal.Email,
		Role:      principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   principal.AccountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded claims.
// Failures wrap ErrTokenExpired or ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.AccountID == "" || claims.Subject != claims.AccountID {
		return nil, fmt.Errorf("%w: subject mismatch", ErrTokenInvalid)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, claims.Role)
	}
	return claims, nil
}
