package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
)

// CatalogOp calcula los cambios de una operación sobre el índice del catálogo.
type CatalogOp func(idx *composition.Index) (entity.ChangeSet, error)

// WithCatalog abre una transacción, bloquea el catálogo, toma el snapshot, ejecuta op
// y aplica su ChangeSet en la misma transacción. Si op falla no se escribe nada.
func WithCatalog(ctx context.Context, tx ports.TxRunner, op CatalogOp) error {
	return tx.Run(ctx, func(items repository.ItemRepository) error {
		if err := items.LockCatalog(ctx); err != nil {
			return fmt.Errorf("lock catalog: %w", err)
		}
		snapshot, err := items.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		changes, err := op(composition.NewIndex(snapshot))
		if err != nil {
			return err
		}
		if changes.IsEmpty() {
			return nil
		}
		if err := items.Apply(ctx, changes); err != nil {
			return fmt.Errorf("apply changes: %w", err)
		}
		return nil
	})
}
