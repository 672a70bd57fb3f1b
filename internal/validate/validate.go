// Package validate holds pure input checks shared by the engine, facade and
// API layer. All failures wrap model.ErrValidation so the boundary can map
// them uniformly.
package validate

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/haletree/symptom-intake/server/internal/model"
)

// MaxSymptomLen bounds the free-text symptom description captured at session
// creation.
const MaxSymptomLen = 500

// MaxListLimit caps page sizes on list endpoints.
const MaxListLimit = 100

// actorIdRx: lowercase letters, digits, hyphen, underscore, 1-64 chars.
// Identity tokens are verified upstream; this only checks shape.
var actorIdRx = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

func errf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", model.ErrValidation, fmt.Sprintf(format, args...))
}

// SymptomText checks the optional free-text symptom description. Empty is
// permitted and means a generic interview.
func SymptomText(v string) error {
	if len(v) > MaxSymptomLen {
		return errf("symptoms exceed %d characters", MaxSymptomLen)
	}
	return nil
}

// ActorID checks identity shape. Empty is permitted (anonymous caller).
func ActorID(v string) error {
	if v == "" {
		return nil
	}
	if !actorIdRx.MatchString(v) {
		return errf("actorId must match %s", actorIdRx.String())
	}
	return nil
}

// RequiredActorID is ActorID with the anonymous case rejected, for the
// identified flow where a caller identity is mandatory.
func RequiredActorID(v string) error {
	if v == "" {
		return errf("actorId is required")
	}
	return ActorID(v)
}

// SessionID checks that a session identifier is a well-formed UUID.
func SessionID(v string) error {
	if v == "" {
		return errf("sessionId is required")
	}
	if _, err := uuid.Parse(v); err != nil {
		return errf("sessionId is not a valid identifier")
	}
	return nil
}

// QuestionID checks that a question reference is present.
func QuestionID(v string) error {
	if v == "" {
		return errf("questionId is required")
	}
	return nil
}

// QuestionNumber checks 1-based question addressing used by the identified UI.
func QuestionNumber(n int) error {
	if n < 1 || n > model.TotalQuestions {
		return errf("question number must be between 1 and %d", model.TotalQuestions)
	}
	return nil
}

// Pagination checks limit/offset query parameters for list endpoints.
func Pagination(limit, offset int) error {
	if limit < 1 || limit > MaxListLimit {
		return errf("limit must be between 1 and %d", MaxListLimit)
	}
	if offset < 0 {
		return errf("offset must not be negative")
	}
	return nil
}
