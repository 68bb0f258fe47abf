// Package history keeps the rolling record of successful generations. The
// core treats it as a write sink behind a small load/save port so the
// components stay pure and testable without a storage dependency.
package history

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aura/engine"
	"aura/infra"
	"aura/render"
)

// DefaultLimit caps the history at the ten most recent generations.
const DefaultLimit = 10

// Item is one completed generation, carrying enough state for the host UI to
// restore the full editing context when the user clicks it.
type Item struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	OriginalImage  string             `json:"original_image"`
	GeneratedImage string             `json:"generated_image"`
	Prompt         string             `json:"prompt"`
	Engine         engine.Engine      `json:"engine"`
	Resolution     render.Resolution  `json:"resolution"`
	AspectRatio    render.AspectRatio `json:"aspect_ratio"`
}

// Store is the persistence port. Writes always replace the whole list;
// last-write-wins is acceptable because the UI gates generations to one in
// flight at a time.
type Store interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// Log wraps a Store with the capped most-recent-first list semantics.
type Log struct {
	store  Store
	limit  int
	logger *infra.Logger
	mu     sync.Mutex
}

// NewLog builds a history log over the given store. A non-positive limit
// falls back to DefaultLimit.
func NewLog(store Store, limit int, logger *infra.Logger) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Log{store: store, limit: limit, logger: logger}
}

// Items returns the stored history, most recent first.
func (l *Log) Items(ctx context.Context) ([]Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Load(ctx)
}

// Add prepends an item and evicts anything past the cap. A missing ID or
// timestamp is filled in. The updated list is returned for immediate display.
func (l *Log) Add(ctx context.Context, item Item) ([]Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	items = append([]Item{item}, items...)
	if len(items) > l.limit {
		items = items[:l.limit]
	}
	if err := l.store.Save(ctx, items); err != nil {
		return nil, err
	}
	l.logger.Debug().Str("id", item.ID).Int("count", len(items)).Msg("history: item recorded")
	return items, nil
}

// Delete removes the item with the given id. Deleting an unknown id is a
// no-op, not an error.
func (l *Log) Delete(ctx context.Context, id string) ([]Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == len(items) {
		return items, nil
	}
	if err := l.store.Save(ctx, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Clear empties the history.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Save(ctx, nil)
}
