package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/suryaansh001/shayari-backend/internal/shayari"
)

type memEntry struct {
	rec *shayari.Shayari
	seq uint64
}

// MemoryRepo keeps records in a map guarded by a RWMutex. It backs tests
// and runs the service when no MongoDB URI is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	seq   uint64
	store map[string]*memEntry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*memEntry)}
}

func (m *MemoryRepo) Insert(_ context.Context, s *shayari.Shayari) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[s.ID]; ok {
		return fmt.Errorf("duplicate id %q", s.ID)
	}
	m.seq++
	m.store[s.ID] = &memEntry{rec: s.Clone(), seq: m.seq}
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*shayari.Shayari, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.store[id]; ok {
		return e.rec.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(_ context.Context, publicOnly bool) ([]*shayari.Shayari, error) {
	m.mu.RLock()
	entries := make([]*memEntry, 0, len(m.store))
	for _, e := range m.store {
		if publicOnly && !e.rec.IsPublic {
			continue
		}
		entries = append(entries, &memEntry{rec: e.rec.Clone(), seq: e.seq})
	}
	m.mu.RUnlock()

	// newest first; insertion order breaks ties on equal timestamps
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.After(b.rec.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*shayari.Shayari, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

func (m *MemoryRepo) Replace(_ context.Context, id string, r shayari.Replacement, now time.Time) (*shayari.Shayari, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.rec.Title = r.Title
	e.rec.Content = r.Content
	e.rec.MoodTags = append([]string{}, r.MoodTags...)
	e.rec.IsPublic = r.IsPublic
	e.rec.UpdatedAt = now
	return e.rec.Clone(), nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) IncrementReaction(_ context.Context, id string, em shayari.Emoji, now time.Time) (*shayari.Shayari, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok || !e.rec.IsPublic {
		return nil, ErrNotFound
	}
	e.rec.Reactions.Add(em, 1)
	e.rec.UpdatedAt = now
	return e.rec.Clone(), nil
}

func (m *MemoryRepo) Ping(context.Context) error { return nil }
