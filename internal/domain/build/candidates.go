package build

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/compat"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Candidates resultado de filtrar el catálogo para un slot.
// HiddenIncompatible cuenta los ítems elegibles descartados por compatibilidad.
type Candidates struct {
	Items              []*entity.InventoryItem
	HiddenIncompatible int
	Rejected           map[string]string
}

// Eligible indica si el ítem puede entrar en la build: no compuesto, no defectuoso y
// en stock, salvo que ya pertenezca a la build en edición.
func (b *Builder) Eligible(item *entity.InventoryItem) bool {
	if item == nil || item.IsComposite() || item.IsDefective {
		return false
	}
	if item.Status == entity.StatusInStock {
		return true
	}
	return b.editingID != "" && b.owned[item.ID]
}

// Candidates filtra el catálogo para el slot: elegibilidad, categoría, texto libre y compatibilidad.
func (b *Builder) Candidates(slotID string, catalog []*entity.InventoryItem, query string) (Candidates, error) {
	slot, ok := b.Slot(slotID)
	if !ok {
		return Candidates{}, fmt.Errorf("%w: %s", domain.ErrUnknownSlot, slotID)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	ctx := b.Context()
	out := Candidates{Rejected: map[string]string{}}
	for _, item := range catalog {
		if !b.Eligible(item) || !slot.Accepts(item) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(item.Name), q) {
			continue
		}
		if v := compat.Check(slot.ID, item, ctx); !v.Compatible {
			out.HiddenIncompatible++
			out.Rejected[item.ID] = v.Reason
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
