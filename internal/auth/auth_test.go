package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, err := ExtractBearer(r)
	assert.ErrorIs(t, err, ErrMissingToken)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractBearer(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer")
	_, err = ExtractBearer(r)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer tok-123")
	tok, err := ExtractBearer(r)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier(map[string]string{"tok-a": "alice"})

	actor, err := v.Verify(context.Background(), "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "alice", actor)

	_, err = v.Verify(context.Background(), "tok-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStaticVerifierFromSpec(t *testing.T) {
	v, err := NewStaticVerifierFromSpec("tok-a:alice, tok-b:bob")
	require.NoError(t, err)

	actor, err := v.Verify(context.Background(), "tok-b")
	require.NoError(t, err)
	assert.Equal(t, "bob", actor)

	// empty table is valid and rejects everything
	v, err = NewStaticVerifierFromSpec("")
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewStaticVerifierFromSpec("no-colon")
	assert.Error(t, err)
}
