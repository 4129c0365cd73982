package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mcq-platform/internal/domain"
	"mcq-platform/internal/repository/models"
	"mcq-platform/internal/util"
)

const accountColumns = `id, email, full_name, phone_number, date_of_birth, password_hash, role, created_at, updated_at`

// sqlxAccountRepository implements domain.AccountRepository using sqlx.
type sqlxAccountRepository struct {
	db DBTX
}

func NewSQLXAccountRepository(db DBTX) domain.AccountRepository {
	return &sqlxAccountRepository{db: db}
}

func toDomainAccount(m *models.Account) *domain.Account {
	if m == nil {
		return nil
	}
	a := &domain.Account{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName.String,
		PhoneNumber:  m.PhoneNumber.String,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	a.DateOfBirth = util.DateFromNull(m.DateOfBirth)
	return a
}

func fromDomainAccount(a *domain.Account) *models.Account {
	if a == nil {
		return nil
	}
	m := &models.Account{
		ID:           a.ID,
		Email:        a.Email,
		FullName:     util.NullableText(a.FullName),
		PhoneNumber:  util.NullableText(a.PhoneNumber),
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		DateOfBirth:  util.NullableDate(a.DateOfBirth),
	}
	return m
}

// CreateAccount inserts a new account. ID and timestamps are assigned when empty.
func (r *sqlxAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = util.NewULID()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))

	m := fromDomainAccount(account)
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := db.ExecContext(ctx, query,
		m.ID, m.Email, m.FullName, m.PhoneNumber, m.DateOfBirth, m.PasswordHash, m.Role, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return writeError("create account", err)
	}
	return nil
}

func (r *sqlxAccountRepository) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, "id", id)
}

// GetAccountByEmail looks up the login identifier case-insensitively.
func (r *sqlxAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *sqlxAccountRepository) getOne(ctx context.Context, column, value string) (*domain.Account, error) {
	var m models.Account
	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = ?`)
	if err := db.GetContext(ctx, &m, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by %s: %w", column, err)
	}
	return toDomainAccount(&m), nil
}

// UpdateAccount writes the mutable profile fields and role.
func (r *sqlxAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	account.UpdatedAt = time.Now().UTC()
	m := fromDomainAccount(account)

	db := GetExecutor(ctx, r.db)
	query := db.Rebind(`UPDATE accounts SET
				full_name = ?,
				phone_number = ?,
				date_of_birth = ?,
				password_hash = ?,
				role = ?,
				updated_at = ?
			WHERE id = ?`)
	result, err := db.ExecContext(ctx, query,
		m.FullName, m.PhoneNumber, m.DateOfBirth, m.PasswordHash, m.Role, m.UpdatedAt, m.ID)
	if err != nil {
		return writeError("update account", err)
	}
	return expectAffected(result, "update account")
}
