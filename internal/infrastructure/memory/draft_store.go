package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain/build"
)

var _ ports.DraftStore = (*DraftStore)(nil)

type draftEntry struct {
	draft     build.Draft
	expiresAt time.Time
}

// DraftStore borradores en memoria con TTL.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]draftEntry
	now    func() time.Time
}

// NewDraftStore crea el store vacío.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: map[string]draftEntry{}, now: time.Now}
}

// Save guarda o reemplaza el borrador.
func (s *DraftStore) Save(ctx context.Context, d build.Draft, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = draftEntry{draft: d, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get devuelve el borrador o nil si no existe o expiró.
func (s *DraftStore) Get(ctx context.Context, id string) (*build.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.drafts[id]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.drafts, id)
		return nil, nil
	}
	d := e.draft
	return &d, nil
}

// Delete elimina el borrador (idempotente).
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}
