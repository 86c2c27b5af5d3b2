package outbound

// PasswordService derives and checks stored password secrets.
// VerifyPassword returns false for any malformed stored value.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(storedSecret, candidate string) bool
}
