package session

import (
	"context"
	"testing"
	"time"

	"github.com/codr1/futplan/internal/testutil"
)

func TestSQLiteStore(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Unix(1763208000, 0)

	live := &Session{ID: "live", Token: "t1", Email: "ana@example.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	dead := &Session{ID: "dead", Token: "t2", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}
	for _, s := range []*Session{live, dead} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save %s: %v", s.ID, err)
		}
	}

	got, err := store.Get(ctx, "live")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Token != "t1" || got.Email != "ana@example.com" || !got.ExpiresAt.Equal(live.ExpiresAt) {
		t.Fatalf("unexpected session %+v", got)
	}

	live.Token = "t3"
	if err := store.Save(ctx, live); err != nil {
		t.Fatalf("resave: %v", err)
	}
	if got, _ := store.Get(ctx, "live"); got.Token != "t3" {
		t.Fatalf("expected upsert, got %q", got.Token)
	}

	ids, err := store.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if len(ids) != 1 || ids[0] != "dead" {
		t.Fatalf("expected dead session removed, got %v", ids)
	}
	if _, err := store.Get(ctx, "dead"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Delete(ctx, "live"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "live"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
