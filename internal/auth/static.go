package auth

import (
	"context"
	"fmt"
	"strings"
)

// StaticVerifier resolves tokens from a fixed map. Suitable for development
// and tests; production deployments plug in the real identity provider.
type StaticVerifier struct {
	tokens map[string]string // token -> actorID
}

func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	return &StaticVerifier{tokens: tokens}
}

// NewStaticVerifierFromSpec parses "token1:actor1,token2:actor2" as produced
// by the SYMPTOM_INTAKE_AUTH_TOKENS environment variable.
func NewStaticVerifierFromSpec(spec string) (*StaticVerifier, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tok, actor, ok := strings.Cut(pair, ":")
		if !ok || tok == "" || actor == "" {
			return nil, fmt.Errorf("malformed token entry %q", pair)
		}
		tokens[tok] = actor
	}
	return &StaticVerifier{tokens: tokens}, nil
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (string, error) {
	actor, ok := v.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return actor, nil
}
