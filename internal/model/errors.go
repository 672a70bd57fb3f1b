package model

import "errors"

var (
	// ErrNotFound is returned when no live session (or record) matches.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned for a session whose TTL has lapsed. Callers
	// surface it as a distinct "please restart" condition; expired sessions
	// are never resurrected.
	ErrExpired = errors.New("session expired")

	// ErrUnauthorized is returned when the caller's identity does not match
	// the session owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned for malformed caller input.
	ErrValidation = errors.New("validation error")

	// ErrUnknownQuestion is returned when an answer references a question
	// that does not belong to the session's current question set.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrOracle is returned when question or recommendation generation
	// fails or yields malformed content. Transient; the caller may retry
	// the same logical operation.
	ErrOracle = errors.New("oracle generation failed")

	// ErrInvariant is returned for operations that would corrupt interview
	// state, such as changing an answer several questions in the past.
	ErrInvariant = errors.New("invariant violation")
)
