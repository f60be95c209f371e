// ABOUTME: Tests for unified Storage wrapper
// ABOUTME: Runs the shared store contract against in-memory and file-backed SQLite
package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/harper/chatter/internal/models"
	"github.com/harper/chatter/internal/storage/storetest"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorageContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Store {
		return newTestStorage(t)
	})
}

func TestStorageInMemory(t *testing.T) {
	store := newTestStorage(t)

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
	if store.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", store.Path())
	}
}

func TestStoragePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chatter.db")

	store, err := NewStorageWithPath(path)
	if err != nil {
		t.Fatalf("NewStorageWithPath() error = %v", err)
	}
	err = store.Update(ctx, &models.Statement{
		Text:         "hi",
		Occurrence:   2,
		InResponseTo: map[string]int{"hello": 2},
		Name:         "alice",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewStorageWithPath(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Find(ctx, "hi")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got == nil {
		t.Fatal("Find() returned nil after reopen")
	}
	if got.Occurrence != 2 || got.InResponseTo["hello"] != 2 || got.Name != "alice" {
		t.Errorf("Find() = %+v, want occurrence 2, hello:2, name alice", got)
	}
}

func TestStorageUpdateRejectsEmptyText(t *testing.T) {
	store := newTestStorage(t)

	if err := store.Update(context.Background(), &models.Statement{Occurrence: 1}); err == nil {
		t.Error("Update() with empty text should fail")
	}
}

func TestStorageUpdateDropsRemovedEdges(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_ = store.Update(ctx, &models.Statement{Text: "hello", Occurrence: 1})
	_ = store.Update(ctx, &models.Statement{Text: "hi", Occurrence: 1, InResponseTo: map[string]int{"hello": 1}})
	_ = store.Update(ctx, &models.Statement{Text: "hi", Occurrence: 2, InResponseTo: map[string]int{"yo": 1}})

	responses, err := store.ResponsesTo(ctx, "hello")
	if err != nil {
		t.Fatalf("ResponsesTo() error = %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("ResponsesTo(hello) = %d statements, want 0", len(responses))
	}
}

func TestStorageResponsesToCarriesFullAdjacency(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_ = store.Update(ctx, &models.Statement{Text: "hi", Occurrence: 3, InResponseTo: map[string]int{"hello": 2, "hey": 1}})

	responses, err := store.ResponsesTo(ctx, "hello")
	if err != nil {
		t.Fatalf("ResponsesTo() error = %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("ResponsesTo() = %d statements, want 1", len(responses))
	}
	if len(responses[0].InResponseTo) != 2 {
		t.Errorf("InResponseTo = %v, want both edges", responses[0].InResponseTo)
	}
}

func TestStorageConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := string(rune('a' + i))
			if err := store.Update(ctx, &models.Statement{Text: text, Occurrence: 1}); err != nil {
				t.Errorf("Update(%s) error = %v", text, err)
			}
		}(i)
	}
	wg.Wait()

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 8 {
		t.Errorf("Count() = %d, want 8", n)
	}
}
