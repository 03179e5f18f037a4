package ports

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-hardware/internal/domain/build"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio atado a esa tx.
// Garantiza que el ChangeSet de una operación se aplique completo o no se aplique.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.ItemRepository) error) error
}

// DraftStore guarda los borradores del editor de builds. Get devuelve (nil, nil) si no existe o expiró.
type DraftStore interface {
	Save(ctx context.Context, draft build.Draft, ttl time.Duration) error
	Get(ctx context.Context, id string) (*build.Draft, error)
	Delete(ctx context.Context, id string) error
}
