// Package build implementa el editor de builds por slots: esquema fijo de slots,
// selección de candidatos filtrados por compatibilidad, nombre derivado y totales.
package build

import (
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain/compat"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/parts"
)

// Identificadores de slot del esquema por defecto.
const (
	SlotCPU         = compat.SlotCPU
	SlotGPU         = "gpu"
	SlotMotherboard = compat.SlotMotherboard
	SlotRAM         = compat.SlotRAM
	SlotStorage     = "storage"
	SlotPSU         = "psu"
	SlotCase        = "case"
	SlotCooling     = "cooling"
	SlotFans        = "fans"
	SlotMisc        = "misc"
)

// Slot define una posición de la plantilla de build.
// Match se compara con la categoría o subcategoría del ítem (sin distinguir mayúsculas);
// Kind acepta además los alias de parts.KindOf ("CPU", "SSD", "Video Card"...).
type Slot struct {
	ID       string
	Label    string
	Match    string
	Kind     parts.Kind
	Required bool
	Multiple bool
}

// DefaultSlots esquema estándar de una PC: siete slots obligatorios de selección única,
// Cooling y Fans opcionales (Fans múltiple) y Misc opcional que acepta cualquier categoría.
func DefaultSlots() []Slot {
	return []Slot{
		{ID: SlotCPU, Label: "CPU", Match: "Processor", Kind: parts.KindCPU, Required: true},
		{ID: SlotGPU, Label: "GPU", Match: "Graphics Card", Kind: parts.KindGPU, Required: true},
		{ID: SlotMotherboard, Label: "Motherboard", Match: "Motherboard", Kind: parts.KindMotherboard, Required: true},
		{ID: SlotRAM, Label: "RAM", Match: "RAM", Kind: parts.KindRAM, Required: true},
		{ID: SlotStorage, Label: "Storage", Match: "Storage", Kind: parts.KindStorage, Required: true},
		{ID: SlotPSU, Label: "PSU", Match: "Power Supply", Kind: parts.KindPSU, Required: true},
		{ID: SlotCase, Label: "Case", Match: "Case", Kind: parts.KindCase, Required: true},
		{ID: SlotCooling, Label: "Cooling", Match: "Cooling", Kind: parts.KindCooling},
		{ID: SlotFans, Label: "Fans", Match: "Fans", Kind: parts.KindFan, Multiple: true},
		{ID: SlotMisc, Label: "Misc", Multiple: true},
	}
}

// Accepts indica si la categoría del ítem corresponde al slot.
func (s Slot) Accepts(item *entity.InventoryItem) bool {
	switch s.ID {
	case SlotMisc:
		return true
	case SlotFans:
		if equalFold(item.Category, "Cooling") || equalFold(item.SubCategory, "Cooling") {
			return true
		}
		for _, label := range []string{item.Category, item.SubCategory, item.Name} {
			if strings.Contains(strings.ToLower(label), "fan") {
				return true
			}
		}
		return false
	}
	if s.Kind != "" && parts.Is(item, s.Kind) {
		return true
	}
	return equalFold(item.Category, s.Match) || equalFold(item.SubCategory, s.Match)
}

func equalFold(a, b string) bool {
	a = strings.TrimSpace(a)
	return a != "" && strings.EqualFold(a, strings.TrimSpace(b))
}
