package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/haletree/symptom-intake/server/internal/model"
)

func TestPostgresArchive_RoundTrip(t *testing.T) {
	dsn := os.Getenv("SYMPTOM_INTAKE_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SYMPTOM_INTAKE_POSTGRES_DSN not set; skipping archive integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := Bootstrap(ctx, db); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	a := NewWithDB(db)

	actor := "it-" + uuid.New().String()[:8]
	rec := &model.Recommendation{
		ActorID:     actor,
		Symptoms:    "headache",
		Summary:     "Rest and hydrate.",
		TriageLevel: model.TriageSelfCare,
	}
	if err := a.SaveRecommendation(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.RecommendationID == "" || rec.CreationTime.IsZero() {
		t.Fatalf("save did not backfill id/timestamp: %+v", rec)
	}

	lst, err := a.ListRecommendations(ctx, actor, 10, 0)
	if err != nil || len(lst) != 1 {
		t.Fatalf("list: n=%d err=%v", len(lst), err)
	}
	if lst[0].Summary != rec.Summary || lst[0].TriageLevel != model.TriageSelfCare {
		t.Fatalf("list mismatch: %+v", lst[0])
	}

	// Anonymous recommendations are rejected outright.
	if err := a.SaveRecommendation(ctx, &model.Recommendation{Summary: "x", TriageLevel: model.TriageRoutine}); err == nil {
		t.Fatalf("expected error for anonymous recommendation")
	}
}
