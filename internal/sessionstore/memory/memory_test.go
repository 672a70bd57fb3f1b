package memory

import (
	"context"
	"testing"
	"time"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
	"github.com/haletree/symptom-intake/server/internal/sessionstore/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) sessionstore.Store { return New() })
}

func TestMemoryStore_SlidingExpiry(t *testing.T) {
	clock := time.Now()
	st := NewWithClock(func() time.Time { return clock })
	ctx := context.Background()

	s := &model.Session{SessionID: "s1", Phase: 1, CreationTime: clock}
	if err := st.Put(ctx, s, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// 50 minutes later the session is still live; re-putting slides the TTL.
	clock = clock.Add(50 * time.Minute)
	if _, err := st.Get(ctx, "s1"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}
	if err := st.Put(ctx, s, time.Hour); err != nil {
		t.Fatalf("re-Put: %v", err)
	}

	// The original deadline has passed but the refreshed one has not.
	clock = clock.Add(30 * time.Minute)
	if _, err := st.Get(ctx, "s1"); err != nil {
		t.Fatalf("Get after slide: %v", err)
	}

	clock = clock.Add(time.Hour)
	if _, err := st.Get(ctx, "s1"); err != model.ErrExpired {
		t.Fatalf("want ErrExpired, got %v", err)
	}
}
