package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/haletree/symptom-intake/server/internal/model"
)

func TestSymptomText(t *testing.T) {
	if err := SymptomText(""); err != nil {
		t.Fatalf("empty symptoms should be permitted: %v", err)
	}
	if err := SymptomText("persistent headache and nausea"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := SymptomText(strings.Repeat("a", MaxSymptomLen+1))
	if err == nil {
		t.Fatalf("expected error for oversized symptoms")
	}
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestActorID(t *testing.T) {
	tests := []struct {
		name        string
		actorID     string
		expectError bool
	}{
		{name: "empty is anonymous", actorID: "", expectError: false},
		{name: "valid", actorID: "alice_01", expectError: false},
		{name: "uppercase rejected", actorID: "Alice", expectError: true},
		{name: "spaces rejected", actorID: "a b", expectError: true},
		{name: "too long", actorID: strings.Repeat("a", 65), expectError: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ActorID(tc.actorID)
			if tc.expectError && err == nil {
				t.Fatalf("expected error for %q", tc.actorID)
			}
			if !tc.expectError && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.actorID, err)
			}
		})
	}

	if err := RequiredActorID(""); err == nil {
		t.Fatalf("expected error for missing required actor")
	}
}

func TestSessionID(t *testing.T) {
	if err := SessionID(uuid.New().String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SessionID(""); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if err := SessionID("not-a-uuid"); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}

func TestQuestionNumber(t *testing.T) {
	for _, n := range []int{1, 8, model.TotalQuestions} {
		if err := QuestionNumber(n); err != nil {
			t.Fatalf("unexpected error for %d: %v", n, err)
		}
	}
	for _, n := range []int{0, -1, model.TotalQuestions + 1} {
		if err := QuestionNumber(n); err == nil {
			t.Fatalf("expected error for %d", n)
		}
	}
}

func TestPagination(t *testing.T) {
	if err := Pagination(20, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Pagination(0, 0); err == nil {
		t.Fatalf("expected error for zero limit")
	}
	if err := Pagination(MaxListLimit+1, 0); err == nil {
		t.Fatalf("expected error for oversized limit")
	}
	if err := Pagination(10, -1); err == nil {
		t.Fatalf("expected error for negative offset")
	}
}
