package composition

import (
	"time"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Dismantle elimina el compuesto y devuelve sus componentes a su estado previo.
// Bundle retroactivo: cada componente recupera su venta original (SOLD, o TRADED si salió por trade).
// Build o bundle normal: los componentes vuelven a IN_STOCK y se borran los datos de venta.
// Los componentes con referencia inversa al compuesto que no figuran en ComponentIDs también se liberan.
func Dismantle(idx *Index, composite *entity.InventoryItem, now time.Time) (Result, error) {
	if composite == nil {
		return Result{}, domain.ErrNotFound
	}
	if !composite.IsComposite() {
		return Result{}, domain.ErrNotComposite
	}
	now = nowOr(now)
	components, missing := idx.ComponentsOf(composite)
	res := Result{Composite: composite, Missing: missing}
	for _, st := range idx.Stale(composite) {
		components = append(components, st)
		res.Healed = append(res.Healed, st.ID)
	}
	retro := composite.IsRetroBundle()
	for _, c := range dedupe(components) {
		freed := c.Clone()
		freed.ParentContainerID = ""
		freed.UpdatedAt = now
		if retro {
			freed.Status = restoredDisposal(freed)
		} else {
			freed.Status = entity.StatusInStock
			freed.ClearSale()
		}
		res.Changes.Updated = append(res.Changes.Updated, freed)
	}
	res.Changes.Deleted = []string{composite.ID}
	return res, nil
}

func restoredDisposal(item *entity.InventoryItem) entity.Status {
	if item.PaymentType == entity.PaymentTypeTrade || len(item.TradedForIDs) > 0 {
		return entity.StatusTraded
	}
	return entity.StatusSold
}
