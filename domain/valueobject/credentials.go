package valueobject

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrMissingEmail     = errors.New("email is required")
	ErrMissingPassword  = errors.New("password is required")
	ErrMissingName      = errors.New("name is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Credentials is a login attempt. Login accepts any non-empty password so that a
// short or odd password yields InvalidCredentials, not a validation hint.
type Credentials struct {
	email    string
	password string
}

func NewCredentials(email, password string) (*Credentials, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	return &Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c *Credentials) Email() string {
	return c.email
}

func (c *Credentials) Password() string {
	return c.password
}

// Registration is a validated sign-up request
type Registration struct {
	name     string
	email    string
	password string
}

func NewRegistration(name, email, password string) (*Registration, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return nil, ErrMissingName
	}
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	return &Registration{name: name, email: email, password: password}, nil
}

func (r *Registration) Name() string {
	return r.name
}

func (r *Registration) Email() string {
	return r.email
}

func (r *Registration) Password() string {
	return r.password
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword applies the policy for new passwords
func ValidatePassword(password string) error {
	if password == "" {
		return ErrMissingPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
