package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
)

func sample(actorID string) *model.Session {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s := &model.Session{
		SessionID:    uuid.New().String(),
		ActorID:      actorID,
		Symptoms:     "headache",
		Phase:        1,
		CreationTime: now,
	}
	for i := 0; i < model.QuestionsPerPhase; i++ {
		s.Questions = append(s.Questions, model.Question{
			QuestionID: uuid.New().String(),
			Text:       "Do you feel tired?",
			Kind:       model.QuestionYesNo,
		})
	}
	s.Answers = append(s.Answers, model.Answer{QuestionID: s.Questions[0].QuestionID, Value: true, AnsweredAt: now})
	return s
}

// Run exercises the sessionstore compliance suite against a driver.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) sessionstore.Store) {
	t.Helper()

	st := makeStore(t)
	ctx := context.Background()

	// Round trip
	s := sample("actor-1")
	if err := st.Put(ctx, s, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := st.Get(ctx, s.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SessionID != s.SessionID || got.ActorID != s.ActorID || got.Symptoms != s.Symptoms {
		t.Fatalf("Get mismatch: got=%+v", got)
	}
	if len(got.Questions) != model.QuestionsPerPhase || len(got.Answers) != 1 {
		t.Fatalf("Get slices: questions=%d answers=%d", len(got.Questions), len(got.Answers))
	}
	if got.Answers[0].Value != true {
		t.Fatalf("answer value not preserved")
	}

	// Returned session must be a copy, not an alias of the stored record.
	got.Answers[0].Value = false
	if again, err := st.Get(ctx, s.SessionID); err != nil || again.Answers[0].Value != true {
		t.Fatalf("stored record aliased by caller mutation: %+v err=%v", again, err)
	}

	// Actor index
	byActor, err := st.GetByActor(ctx, "actor-1")
	if err != nil || byActor.SessionID != s.SessionID {
		t.Fatalf("GetByActor: got=%v err=%v", byActor, err)
	}
	if _, err := st.GetByActor(ctx, "nobody"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByActor missing: want ErrNotFound, got %v", err)
	}
	if _, err := st.GetByActor(ctx, ""); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByActor anonymous: want ErrNotFound, got %v", err)
	}

	// Unknown id
	if _, err := st.Get(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get unknown: want ErrNotFound, got %v", err)
	}

	// Re-put extends TTL and updates content
	s.Answers = append(s.Answers, model.Answer{QuestionID: s.Questions[1].QuestionID, Value: false, AnsweredAt: time.Now()})
	if err := st.Put(ctx, s, time.Hour); err != nil {
		t.Fatalf("re-Put: %v", err)
	}
	if got, err := st.Get(ctx, s.SessionID); err != nil || len(got.Answers) != 2 {
		t.Fatalf("re-Get: answers=%d err=%v", len(got.Answers), err)
	}

	// Expiry: an entry past its TTL reads as expired and is evicted.
	ex := sample("actor-2")
	if err := st.Put(ctx, ex, -time.Second); err != nil {
		t.Fatalf("Put expired: %v", err)
	}
	if _, err := st.Get(ctx, ex.SessionID); !errors.Is(err, model.ErrExpired) {
		t.Fatalf("Get expired: want ErrExpired, got %v", err)
	}
	// After lazy eviction the entry behaves as if it never existed.
	if _, err := st.Get(ctx, ex.SessionID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get after eviction: want ErrNotFound, got %v", err)
	}

	// Remove
	if err := st.Remove(ctx, s.SessionID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := st.Get(ctx, s.SessionID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get after Remove: want ErrNotFound, got %v", err)
	}
	if _, err := st.GetByActor(ctx, "actor-1"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("actor index must not outlive the session")
	}

	// PurgeExpired removes lapsed entries and spares live ones.
	live := sample("actor-3")
	dead := sample("actor-4")
	if err := st.Put(ctx, live, time.Hour); err != nil {
		t.Fatalf("Put live: %v", err)
	}
	if err := st.Put(ctx, dead, -time.Second); err != nil {
		t.Fatalf("Put dead: %v", err)
	}
	n, err := st.PurgeExpired(ctx)
	if err != nil || n != 1 {
		t.Fatalf("PurgeExpired: n=%d err=%v", n, err)
	}
	if _, err := st.Get(ctx, live.SessionID); err != nil {
		t.Fatalf("live session purged: %v", err)
	}
}
