package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 210000
	SaltLength        = 16
	KeyLength         = 64
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// Params fixes the derivation parameters. Stored secrets do not carry them, so
// changing Params invalidates every existing secret.
type Params struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

func DefaultParams() Params {
	return Params{
		Iterations: DefaultIterations,
		SaltLength: SaltLength,
		KeyLength:  KeyLength,
	}
}

// PBKDF2PasswordService stores secrets as hex(salt):hex(key) using PBKDF2-HMAC-SHA512
type PBKDF2PasswordService struct {
	params Params
	random io.Reader
}

func NewPBKDF2PasswordService(params Params) *PBKDF2PasswordService {
	def := DefaultParams()
	if params.Iterations <= 0 {
		params.Iterations = def.Iterations
	}
	if params.SaltLength <= 0 {
		params.SaltLength = def.SaltLength
	}
	if params.KeyLength <= 0 {
		params.KeyLength = def.KeyLength
	}
	return &PBKDF2PasswordService{
		params: params,
		random: rand.Reader,
	}
}

func (s *PBKDF2PasswordService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, s.params.SaltLength)
	if _, err := io.ReadFull(s.random, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := s.derive(password, salt)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether candidate matches storedSecret. A malformed
// secret is a mismatch, not an error.
func (s *PBKDF2PasswordService) VerifyPassword(storedSecret, candidate string) bool {
	saltHex, keyHex, ok := strings.Cut(storedSecret, ":")
	if !ok || saltHex == "" || keyHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) != s.params.KeyLength {
		return false
	}

	got := s.derive(candidate, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (s *PBKDF2PasswordService) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, s.params.Iterations, s.params.KeyLength, sha512.New)
}
