package domain

import (
	"strings"
	"time"
)

// Role is the authority level of an Account.
type Role string

const (
	RoleStandard      Role = "STANDARD"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// ParseRole accepts the canonical names plus the short forms older clients send.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleStandard), "USER":
		return RoleStandard, true
	case string(RoleAdministrator), "ADMIN":
		return RoleAdministrator, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdministrator
}

// Account is a user of the platform. Email is the login identifier.
type Account struct {
	ID           string
	Email        string
	FullName     string
	PhoneNumber  string
	DateOfBirth  *time.Time
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdministrator
}

// Principal returns the identity this account acts as once authenticated.
func (a *Account) Principal() Principal {
	return Principal{AccountID: a.ID, Email: a.Email, Role: a.Role}
}

// Principal is a verified identity attached to a request.
type Principal struct {
	AccountID string
	Email     string
	Role      Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdministrator
}

// AccountUpdate carries the optional fields of a profile update.
// A nil field is left unchanged.
type AccountUpdate struct {
	FullName    *string
	PhoneNumber *string
	DateOfBirth *time.Time
	Role        *Role
}
