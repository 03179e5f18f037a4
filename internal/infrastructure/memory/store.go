// Package memory implementa los puertos de persistencia en memoria: catálogo transaccional
// (copia de trabajo por transacción) y borradores con expiración.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
)

var (
	_ repository.ItemRepository = (*ItemRepo)(nil)
	_ ports.TxRunner            = (*Store)(nil)
)

type state map[string]*entity.InventoryItem

func (s state) clone() state {
	out := make(state, len(s))
	for id, it := range s {
		out[id] = it.Clone()
	}
	return out
}

// Store catálogo en memoria. Run aplica la transacción sobre una copia y la publica solo si fn no falla.
type Store struct {
	mu    sync.Mutex
	items state
}

// NewStore crea el catálogo con los ítems iniciales (se copian).
func NewStore(items ...*entity.InventoryItem) *Store {
	s := &Store{items: state{}}
	for _, it := range items {
		s.items[it.ID] = it.Clone()
	}
	return s
}

// Repo repositorio en modo autocommit.
func (s *Store) Repo() *ItemRepo { return &ItemRepo{store: s} }

// Run ejecuta fn con un repositorio atado a una copia de trabajo.
func (s *Store) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.items.clone()
	if err := fn(&ItemRepo{tx: work}); err != nil {
		return err
	}
	s.items = work
	return nil
}

// Get copia del ítem o nil (inspección en tests).
func (s *Store) Get(id string) *entity.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Clone()
}

// Len cantidad de ítems.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ItemRepo implementación del puerto ItemRepository en memoria (usable en autocommit o dentro de Run).
type ItemRepo struct {
	store *Store
	tx    state
}

func (r *ItemRepo) with(fn func(st state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.items)
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.with(func(st state) error {
		if _, ok := st[item.ID]; ok {
			return domain.ErrConflict
		}
		st[item.ID] = item.Clone()
		return nil
	})
}

// GetByID obtiene un ítem por ID; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.with(func(st state) error {
		out = st[id].Clone()
		return nil
	})
	return out, err
}

// GetByIDs obtiene los ítems existentes en el orden pedido.
func (r *ItemRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.with(func(st state) error {
		for _, id := range ids {
			if it, ok := st[id]; ok {
				out = append(out, it.Clone())
			}
		}
		return nil
	})
	return out, err
}

// List filtra y pagina, más recientes primero.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var matched []*entity.InventoryItem
	err := r.with(func(st state) error {
		q := strings.ToLower(strings.TrimSpace(f.Search))
		for _, it := range st {
			if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
				continue
			}
			if f.SubCategory != "" && !strings.EqualFold(it.SubCategory, f.SubCategory) {
				continue
			}
			if f.Status != "" && it.Status != f.Status {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
				continue
			}
			matched = append(matched, it.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sortItems(matched)
	total := len(matched)
	if f.Offset >= total {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

// Snapshot catálogo completo.
func (r *ItemRepo) Snapshot(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.with(func(st state) error {
		for _, it := range st {
			out = append(out, it.Clone())
		}
		return nil
	})
	sortItems(out)
	return out, err
}

// LockCatalog no hace nada: Run ya tiene el store bloqueado.
func (r *ItemRepo) LockCatalog(ctx context.Context) error { return nil }

// Apply aplica el lote: altas, modificaciones (deben existir) y bajas.
func (r *ItemRepo) Apply(ctx context.Context, cs entity.ChangeSet) error {
	return r.with(func(st state) error {
		for _, it := range cs.Created {
			if _, ok := st[it.ID]; ok {
				return domain.ErrConflict
			}
		}
		for _, it := range cs.Updated {
			if _, ok := st[it.ID]; !ok {
				return domain.ErrNotFound
			}
		}
		for _, it := range cs.Created {
			st[it.ID] = it.Clone()
		}
		for _, it := range cs.Updated {
			st[it.ID] = it.Clone()
		}
		for _, id := range cs.Deleted {
			delete(st, id)
		}
		return nil
	})
}

func sortItems(items []*entity.InventoryItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
