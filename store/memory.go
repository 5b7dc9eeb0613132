package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. It backs local development
// without a MongoDB instance and the package tests. Semantics mirror the
// Mongo backend: unique userId, versioned replace, transactional archive
// (the hook runs under the same lock as the history append).
type MemoryBackend[P any] struct {
	mu      sync.Mutex
	active  map[string]*ActiveDoc[P]
	history map[string]*HistoryDoc[P]
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend[P any]() *MemoryBackend[P] {
	return &MemoryBackend[P]{
		active:  make(map[string]*ActiveDoc[P]),
		history: make(map[string]*HistoryDoc[P]),
	}
}

func (b *MemoryBackend[P]) FindActive(ctx context.Context, userID string) (*ActiveDoc[P], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.active[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyActive(doc), nil
}

func (b *MemoryBackend[P]) InsertActive(ctx context.Context, doc *ActiveDoc[P]) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.active[doc.UserID]; ok {
		return ErrDuplicate
	}
	b.active[doc.UserID] = copyActive(doc)
	return nil
}

func (b *MemoryBackend[P]) ReplaceActive(ctx context.Context, doc *ActiveDoc[P]) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, ok := b.active[doc.UserID]
	if !ok || current.Version != doc.Version {
		return ErrStale
	}
	doc.Version++
	b.active[doc.UserID] = copyActive(doc)
	return nil
}

func (b *MemoryBackend[P]) FindHistory(ctx context.Context, userID string) (*HistoryDoc[P], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.history[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyHistory(doc), nil
}

func (b *MemoryBackend[P]) EvictAndReplace(ctx context.Context, doc *ActiveDoc[P], evicted Day[P], hook ArchiveHook[P]) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	current, ok := b.active[doc.UserID]
	if !ok || current.Version != doc.Version {
		return ErrStale
	}
	hist, ok := b.history[doc.UserID]
	if !ok {
		hist = &HistoryDoc[P]{UserID: doc.UserID, Days: []Day[P]{}}
		b.history[doc.UserID] = hist
	}
	hist.Days = append(hist.Days, evicted)
	if hook != nil {
		if err := hook(ctx, doc.UserID, evicted); err != nil {
			// Roll the append back so hook failure leaves no partial write.
			hist.Days = hist.Days[:len(hist.Days)-1]
			return err
		}
	}
	doc.Version++
	b.active[doc.UserID] = copyActive(doc)
	return nil
}

func copyActive[P any](doc *ActiveDoc[P]) *ActiveDoc[P] {
	out := *doc
	out.Days = append([]Day[P]{}, doc.Days...)
	return &out
}

func copyHistory[P any](doc *HistoryDoc[P]) *HistoryDoc[P] {
	out := *doc
	out.Days = append([]Day[P]{}, doc.Days...)
	return &out
}
