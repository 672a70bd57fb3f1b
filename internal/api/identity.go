package api

import (
	"errors"
	"net/http"

	"github.com/haletree/symptom-intake/server/internal/auth"
)

// optionalActor resolves the caller's actor id when a bearer token is
// present. No Authorization header means an anonymous caller, not an error;
// a present-but-invalid token is always rejected.
func optionalActor(v auth.Verifier, r *http.Request) (string, error) {
	token, err := auth.ExtractBearer(r)
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) {
			return "", nil
		}
		return "", err
	}
	return v.Verify(r.Context(), token)
}

// requiredActor resolves the caller's actor id, rejecting anonymous callers.
func requiredActor(v auth.Verifier, r *http.Request) (string, error) {
	token, err := auth.ExtractBearer(r)
	if err != nil {
		return "", err
	}
	return v.Verify(r.Context(), token)
}
