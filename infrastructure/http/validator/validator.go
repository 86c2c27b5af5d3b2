package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxBodyBytes caps request bodies read by DecodeJSON
const MaxBodyBytes = 1 << 20

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrEmptyBody = errors.New("request body is required")
)

func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}

	return emailRegex.MatchString(strings.ToLower(email))
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidateUUID reports whether id is a canonical UUID string
func ValidateUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// DecodeJSON decodes a single JSON object from the request body into dst.
// Unknown fields are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: unexpected trailing data")
	}
	return nil
}
