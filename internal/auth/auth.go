// Package auth extracts and verifies caller identity. Verification itself is
// delegated to an external identity provider; the service treats the result
// as an opaque, already-verified actor id and performs no cryptographic
// checks of its own.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = errors.New("missing Authorization header")

	// ErrInvalidToken is returned when the header is malformed or the
	// identity provider rejects the token.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Verifier resolves a bearer token to an actor id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// ExtractBearer extracts the bearer token from the Authorization header.
func ExtractBearer(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(h, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
