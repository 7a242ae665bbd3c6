package clients

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
)

// newEmulatorStore returns a store on a fresh collection in the Firestore
// emulator, or skips when no emulator is configured.
func newEmulatorStore(t *testing.T) *FirestoreStore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "hopehub-test")
	if err != nil {
		t.Fatalf("firestore client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewFirestoreStore(client, fmt.Sprintf("clients-%d", time.Now().UnixNano()))
}

func TestFirestoreStoreRoundTrip(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	rec := Record{"uuid": "c-1", "name": "Ana", "benefits": map[string]any{"MEALS": int64(3)}}
	if err := store.Create(ctx, "c-1", rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["name"] != "Ana" {
		t.Errorf("expected name Ana, got %v", got["name"])
	}
	if meals := got["benefits"].(map[string]any)["MEALS"]; meals != int64(3) {
		t.Errorf("expected MEALS stored as int64 3, got %#v", meals)
	}
	if _, ok := got["createdAt"].(time.Time); !ok {
		t.Errorf("expected createdAt server timestamp, got %#v", got["createdAt"])
	}

	if err := store.Update(ctx, "c-1", Record{"ageGroup": "senior", "a.b": "dotted"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = store.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got["ageGroup"] != "senior" || got["name"] != "Ana" || got["a.b"] != "dotted" {
		t.Errorf("expected merged record, got %v", got)
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0]["id"] != "c-1" {
		t.Fatalf("expected one record with id c-1, got %v", recs)
	}

	if err := store.Delete(ctx, "c-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "c-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFirestoreStoreMissingRecord(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if err := store.Update(ctx, "nobody", Record{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "nobody"); err != nil {
		t.Errorf("delete: expected success for missing record, got %v", err)
	}
}
