// Package composition gestiona el vínculo padre/hijo entre builds o bundles y sus componentes:
// ensamblar, editar, vender, desarmar y agrupar ventas históricas en un bundle retroactivo.
// Todas las operaciones trabajan sobre un snapshot y devuelven un entity.ChangeSet sin mutarlo.
package composition

import (
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Index vista de solo lectura del catálogo. ComponentIDs del padre es la fuente de verdad;
// el índice inverso componente → padre se deriva de esas listas al construirlo.
type Index struct {
	items []*entity.InventoryItem
	byID  map[string]*entity.InventoryItem
	owner map[string]string
}

// NewIndex construye el índice a partir del snapshot.
func NewIndex(items []*entity.InventoryItem) *Index {
	x := &Index{
		items: items,
		byID:  make(map[string]*entity.InventoryItem, len(items)),
		owner: map[string]string{},
	}
	for _, it := range items {
		if it != nil {
			x.byID[it.ID] = it
		}
	}
	for _, it := range items {
		if it == nil || !it.IsComposite() {
			continue
		}
		for _, cid := range it.ComponentIDs {
			if _, taken := x.owner[cid]; !taken {
				x.owner[cid] = it.ID
			}
		}
	}
	return x
}

// Items snapshot completo.
func (x *Index) Items() []*entity.InventoryItem { return x.items }

// Get busca un ítem por id; nil si no existe.
func (x *Index) Get(id string) *entity.InventoryItem { return x.byID[id] }

// Owner id del compuesto que lista al ítem en sus ComponentIDs; vacío si ninguno.
func (x *Index) Owner(id string) string { return x.owner[id] }

// ComponentsOf resuelve los ComponentIDs del compuesto. Los ids sin ítem se omiten y se devuelven en missing.
func (x *Index) ComponentsOf(composite *entity.InventoryItem) (components []*entity.InventoryItem, missing []string) {
	if composite == nil {
		return nil, nil
	}
	for _, id := range composite.ComponentIDs {
		if it := x.byID[id]; it != nil {
			components = append(components, it)
		} else {
			missing = append(missing, id)
		}
	}
	return components, missing
}

// Stale ítems cuya referencia inversa apunta al compuesto sin que ningún compuesto los liste.
// Si otro compuesto los tiene en ComponentIDs, ese vínculo manda y el ítem no se toca.
func (x *Index) Stale(composite *entity.InventoryItem) []*entity.InventoryItem {
	if composite == nil {
		return nil
	}
	var out []*entity.InventoryItem
	for _, it := range x.items {
		if it != nil && it.ParentContainerID == composite.ID && x.owner[it.ID] == "" {
			out = append(out, it)
		}
	}
	return out
}

// Result salida común de las operaciones de composición.
// Missing y Healed informan inconsistencias toleradas para que el llamador las registre.
type Result struct {
	Composite *entity.InventoryItem
	Changes   entity.ChangeSet
	Missing   []string
	Healed    []string
}
