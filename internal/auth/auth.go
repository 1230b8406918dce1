package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Authenticator interface {
	GenerateTokens(userID uuid.UUID, roles []string, activeRole string) (string, string, error)
	ValidateAccessToken(token string) (*Claims, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
}

// ServiceKeyMatches compares in constant time. An empty expected key never
// matches.
func ServiceKeyMatches(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
