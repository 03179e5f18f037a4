package build

import (
	"time"

	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Draft forma serializable del editor (solo ids) para persistir sesiones de edición.
type Draft struct {
	ID         string              `json:"id"`
	EditingID  string              `json:"editing_id,omitempty"`
	Owned      []string            `json:"owned,omitempty"`
	Name       string              `json:"name"`
	NameEdited bool                `json:"name_edited"`
	Picks      map[string][]string `json:"picks"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Snapshot exporta el estado del editor.
func (b *Builder) Snapshot(id string, now time.Time) Draft {
	d := Draft{
		ID:         id,
		EditingID:  b.editingID,
		Name:       b.name,
		NameEdited: b.nameEdited,
		Picks:      make(map[string][]string, len(b.picks)),
		UpdatedAt:  now,
	}
	for id := range b.owned {
		d.Owned = append(d.Owned, id)
	}
	for _, s := range b.slots {
		for _, it := range b.picks[s.ID] {
			d.Picks[s.ID] = append(d.Picks[s.ID], it.ID)
		}
	}
	return d
}

// Restore reconstruye el editor desde un Draft. Los ids que lookup no resuelve se omiten,
// igual que los slots que ya no existen en el esquema.
func Restore(slots []Slot, opts Options, d Draft, lookup func(id string) *entity.InventoryItem) *Builder {
	b := NewBuilder(slots, opts)
	b.editingID = d.EditingID
	b.name = d.Name
	b.nameEdited = d.NameEdited
	for _, id := range d.Owned {
		b.owned[id] = true
	}
	for slotID, ids := range d.Picks {
		if _, ok := b.Slot(slotID); !ok {
			continue
		}
		for _, id := range ids {
			if it := lookup(id); it != nil {
				b.picks[slotID] = append(b.picks[slotID], it)
			}
		}
	}
	return b
}
