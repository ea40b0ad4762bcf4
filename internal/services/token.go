package services

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

const tokenBytes = 32

// TokenService generates opaque URL-safe tokens and manages their digests.
// Plaintext tokens leave this package exactly once, on issue; only bcrypt
// digests are ever persisted.
type TokenService struct{}

func NewTokenService() *TokenService {
	return &TokenService{}
}

// Issue returns a new random token, 43 URL-safe characters.
func (s *TokenService) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *TokenService) Hash(token string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares a stored digest against a candidate token. bcrypt's own
// comparison is used; the digest is salted so direct equality can never work.
func (s *TokenService) Verify(digest, candidate string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(candidate)) == nil
}
