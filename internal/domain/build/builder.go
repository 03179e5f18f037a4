package build

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/compat"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// DefaultMaxNameLength largo máximo por defecto del nombre derivado.
const DefaultMaxNameLength = 60

// Options configuración del editor.
type Options struct {
	MaxNameLength        int
	EnforceRequiredSlots bool
}

func (o Options) maxName() int {
	if o.MaxNameLength <= 0 {
		return DefaultMaxNameLength
	}
	return o.MaxNameLength
}

// Builder estado de una build en edición. No muta los ítems que recibe.
type Builder struct {
	slots      []Slot
	opts       Options
	picks      map[string][]*entity.InventoryItem
	name       string
	nameEdited bool
	editingID  string
	owned      map[string]bool
}

// NewBuilder construye un editor vacío.
func NewBuilder(slots []Slot, opts Options) *Builder {
	if len(slots) == 0 {
		slots = DefaultSlots()
	}
	return &Builder{
		slots: slots,
		opts:  opts,
		picks: make(map[string][]*entity.InventoryItem, len(slots)),
		owned: map[string]bool{},
	}
}

// FromComposite abre una build existente para edición, ubicando cada componente
// en el primer slot que lo acepte. El nombre existente se trata como editado por el usuario.
func FromComposite(slots []Slot, opts Options, composite *entity.InventoryItem, components []*entity.InventoryItem) *Builder {
	b := NewBuilder(slots, opts)
	b.editingID = composite.ID
	b.name = composite.Name
	b.nameEdited = strings.TrimSpace(composite.Name) != ""
	for _, id := range composite.ComponentIDs {
		b.owned[id] = true
	}
	for _, c := range components {
		b.owned[c.ID] = true
		if s, ok := b.placement(c); ok {
			b.picks[s.ID] = append(b.picks[s.ID], c)
		}
	}
	return b
}

func (b *Builder) placement(item *entity.InventoryItem) (Slot, bool) {
	for _, s := range b.slots {
		if s.ID == SlotMisc {
			continue
		}
		if s.Accepts(item) && (s.Multiple || len(b.picks[s.ID]) == 0) {
			return s, true
		}
	}
	for _, s := range b.slots {
		if s.Accepts(item) && s.Multiple {
			return s, true
		}
	}
	return Slot{}, false
}

// Slots devuelve el esquema en orden.
func (b *Builder) Slots() []Slot { return b.slots }

// Slot busca la definición de un slot.
func (b *Builder) Slot(id string) (Slot, bool) {
	for _, s := range b.slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// EditingID id de la build que se está editando; vacío si es nueva.
func (b *Builder) EditingID() string { return b.editingID }

// Owns indica si el ítem ya pertenecía a la build en edición.
func (b *Builder) Owns(id string) bool { return b.owned[id] }

// Toggle selecciona o deselecciona item en el slot.
// Selección única: un ítem nuevo reemplaza al anterior y volver a elegir el ocupante vacía el slot.
// Selección múltiple: agrega si no está y quita si ya está.
// El estado del ocupante reemplazado no cambia hasta guardar la build.
func (b *Builder) Toggle(slotID string, item *entity.InventoryItem) error {
	slot, ok := b.Slot(slotID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSlot, slotID)
	}
	if item == nil {
		return domain.ErrInvalidInput
	}
	current := b.picks[slotID]
	present := indexOf(current, item.ID) >= 0

	// un ítem ocupa un solo slot
	for id, list := range b.picks {
		if id != slotID {
			b.picks[id] = without(list, item.ID)
		}
	}

	switch {
	case present:
		b.picks[slotID] = without(current, item.ID)
	case slot.Multiple:
		b.picks[slotID] = append(current, item)
	default:
		b.picks[slotID] = []*entity.InventoryItem{item}
	}
	b.refreshName()
	return nil
}

// Clear vacía un slot.
func (b *Builder) Clear(slotID string) error {
	if _, ok := b.Slot(slotID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSlot, slotID)
	}
	delete(b.picks, slotID)
	b.refreshName()
	return nil
}

// Selected ítems elegidos en el slot.
func (b *Builder) Selected(slotID string) []*entity.InventoryItem {
	return b.picks[slotID]
}

// Flatten todos los ítems seleccionados en orden de slot, sin repetidos.
func (b *Builder) Flatten() []*entity.InventoryItem {
	var out []*entity.InventoryItem
	seen := map[string]bool{}
	for _, s := range b.slots {
		for _, it := range b.picks[s.ID] {
			if !seen[it.ID] {
				seen[it.ID] = true
				out = append(out, it)
			}
		}
	}
	return out
}

// Total suma del precio de compra de todo lo seleccionado.
func (b *Builder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Flatten() {
		total = total.Add(it.BuyPrice)
	}
	return total
}

// Context selecciones que restringen la compatibilidad.
func (b *Builder) Context() compat.Context {
	return compat.Context{CPU: first(b.picks[SlotCPU]), Motherboard: first(b.picks[SlotMotherboard])}
}

// Name nombre actual (derivado o editado).
func (b *Builder) Name() string { return b.name }

// NameEdited indica si el usuario fijó el nombre manualmente.
func (b *Builder) NameEdited() bool { return b.nameEdited }

// SetName fija el nombre. Un nombre en blanco vuelve al modo derivado.
func (b *Builder) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		b.nameEdited = false
		b.name = b.derivedName()
		return
	}
	b.nameEdited = true
	b.name = name
}

func (b *Builder) refreshName() {
	if !b.nameEdited {
		b.name = b.derivedName()
	}
}

func (b *Builder) derivedName() string {
	return DeriveName(first(b.picks[SlotCPU]), first(b.picks[SlotGPU]), first(b.picks[SlotRAM]), first(b.picks[SlotStorage]), b.opts.maxName())
}

// MissingRequired ids de slots obligatorios vacíos.
func (b *Builder) MissingRequired() []string {
	var missing []string
	for _, s := range b.slots {
		if s.Required && len(b.picks[s.ID]) == 0 {
			missing = append(missing, s.ID)
		}
	}
	return missing
}

// Validate comprueba la build antes de guardar: nombre presente y selección no vacía.
// Los slots obligatorios solo se exigen con Options.EnforceRequiredSlots.
func (b *Builder) Validate() error {
	if strings.TrimSpace(b.name) == "" {
		return domain.ErrEmptyBuildName
	}
	if len(b.Flatten()) == 0 {
		return domain.ErrEmptySelection
	}
	if b.opts.EnforceRequiredSlots {
		if missing := b.MissingRequired(); len(missing) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrRequiredSlotEmpty, strings.Join(missing, ", "))
		}
	}
	return nil
}

func first(list []*entity.InventoryItem) *entity.InventoryItem {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

func indexOf(list []*entity.InventoryItem, id string) int {
	for i, it := range list {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func without(list []*entity.InventoryItem, id string) []*entity.InventoryItem {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]*entity.InventoryItem, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
