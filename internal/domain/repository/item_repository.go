package repository

import (
	"context"

	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// ItemFilter criterios del listado de inventario. Campos vacíos no filtran.
type ItemFilter struct {
	Category    string
	SubCategory string
	Status      entity.Status
	Search      string // contiene, sin distinguir mayúsculas, sobre el nombre
	Limit       int
	Offset      int
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// GetByID devuelve (nil, nil) si el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.InventoryItem, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, int, error)
	// Snapshot devuelve el catálogo completo sobre el que opera el motor de composición.
	Snapshot(ctx context.Context) ([]*entity.InventoryItem, error)
	// LockCatalog serializa las operaciones de composición dentro de la transacción actual.
	LockCatalog(ctx context.Context) error
	// Apply persiste un lote de cambios (altas, modificaciones, bajas).
	Apply(ctx context.Context, changes entity.ChangeSet) error
}
