package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"aura/engine"
	"aura/render"
)

type memStore struct {
	items     []Item
	loadCalls int
	saveCalls int
	failSave  error
}

func (m *memStore) Load(ctx context.Context) ([]Item, error) {
	m.loadCalls++
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memStore) Save(ctx context.Context, items []Item) error {
	m.saveCalls++
	if m.failSave != nil {
		return m.failSave
	}
	m.items = append([]Item(nil), items...)
	return nil
}

func sampleItem(n int) Item {
	return Item{
		ID:             fmt.Sprintf("item-%d", n),
		Timestamp:      time.Date(2026, 8, 1, 12, 0, n, 0, time.UTC),
		OriginalImage:  "data:image/jpeg;base64,b3JpZw==",
		GeneratedImage: fmt.Sprintf("https://img.example/%d.png", n),
		Prompt:         fmt.Sprintf("prompt %d", n),
		Engine:         engine.EngineGemini,
		Resolution:     render.Resolution1K,
		AspectRatio:    render.AspectSquare,
	}
}

func TestAddPrependsAndFillsIdentity(t *testing.T) {
	store := &memStore{}
	log := NewLog(store, 0, nil)

	items, err := log.Add(context.Background(), Item{Prompt: "first"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].ID == "" || items[0].Timestamp.IsZero() {
		t.Fatalf("identity not filled: %+v", items[0])
	}

	items, err = log.Add(context.Background(), Item{Prompt: "second"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if items[0].Prompt != "second" || items[1].Prompt != "first" {
		t.Fatalf("order wrong: %+v", items)
	}
}

func TestAddEvictsOldestPastLimit(t *testing.T) {
	store := &memStore{}
	log := NewLog(store, DefaultLimit, nil)

	for i := 0; i < DefaultLimit+1; i++ {
		if _, err := log.Add(context.Background(), sampleItem(i)); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	items, err := log.Items(context.Background())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != DefaultLimit {
		t.Fatalf("len = %d, want %d", len(items), DefaultLimit)
	}
	if items[0].ID != "item-10" {
		t.Fatalf("newest first violated: %+v", items[0])
	}
	for _, it := range items {
		if it.ID == "item-0" {
			t.Fatal("oldest item should have been evicted")
		}
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	store := &memStore{}
	log := NewLog(store, 0, nil)
	if _, err := log.Add(context.Background(), sampleItem(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	savesBefore := store.saveCalls

	items, err := log.Delete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("no-op delete changed the list: %+v", items)
	}
	if store.saveCalls != savesBefore {
		t.Fatal("no-op delete should not rewrite storage")
	}
}

func TestDeleteRemovesSingleItem(t *testing.T) {
	store := &memStore{}
	log := NewLog(store, 0, nil)
	for i := 1; i <= 3; i++ {
		if _, err := log.Add(context.Background(), sampleItem(i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	items, err := log.Delete(context.Background(), "item-2")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.ID == "item-2" {
			t.Fatal("item-2 should be gone")
		}
	}
}

func TestClearEmptiesHistory(t *testing.T) {
	store := &memStore{}
	log := NewLog(store, 0, nil)
	if _, err := log.Add(context.Background(), sampleItem(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := log.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	items, err := log.Items(context.Background())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("history not empty after clear: %+v", items)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("missing file should load empty, got %+v", loaded)
	}

	want := []Item{sampleItem(1), sampleItem(2)}
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh store against the same path simulates reload after restart.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	loaded, err = reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].ID != "item-1" || loaded[1].Prompt != "prompt 2" {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestFileStoreClearSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	log := NewLog(store, 0, nil)
	if _, err := log.Add(context.Background(), sampleItem(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := log.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	items, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cleared history should reload empty, got %+v", items)
	}
}
