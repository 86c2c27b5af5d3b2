package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// User is an account together with its credential record. PasswordHash holds the
// stored secret produced by the password service and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(name, email, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func NewMember(name, email, passwordHash string) *User {
	return NewUser(name, email, passwordHash, RoleMember)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangePassword replaces the stored secret. It is the only mutation allowed on
// the credential record.
func (u *User) ChangePassword(passwordHash string) {
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) ChangeRole(role Role) {
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
}
