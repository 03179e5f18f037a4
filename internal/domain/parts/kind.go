// Package parts clasifica piezas de hardware por su taxonomía categoría/subcategoría
// y extrae de sus nombres los tokens cortos que usan las builds y los bundles.
package parts

import (
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Kind tipo de pieza inferido de la taxonomía libre del ítem.
type Kind string

const (
	KindCPU         Kind = "cpu"
	KindGPU         Kind = "gpu"
	KindMotherboard Kind = "motherboard"
	KindRAM         Kind = "ram"
	KindStorage     Kind = "storage"
	KindPSU         Kind = "psu"
	KindCase        Kind = "case"
	KindCooling     Kind = "cooling"
	KindFan         Kind = "fan"
	KindOther       Kind = "other"
)

// Claves alternativas de specs por concepto. Se consultan en orden.
var (
	SocketKeys     = []string{"Socket", "CPU Socket", "Socket Type"}
	MemoryTypeKeys = []string{"Memory Type", "Memory", "RAM Type", "Memory Standard"}
	BrandKeys      = []string{"Brand", "Vendor", "Manufacturer"}
	ChipsetKeys    = []string{"Chipset"}
)

var kindAliases = []struct {
	kind    Kind
	aliases []string
}{
	{KindCPU, []string{"processor", "processors", "cpu", "cpus"}},
	{KindGPU, []string{"graphics card", "graphics cards", "gpu", "gpus", "video card"}},
	{KindMotherboard, []string{"motherboard", "motherboards", "mainboard"}},
	{KindRAM, []string{"ram", "memory"}},
	{KindStorage, []string{"storage", "ssd", "hdd", "nvme"}},
	{KindPSU, []string{"power supply", "power supplies", "psu"}},
	{KindCase, []string{"case", "cases", "chassis"}},
	{KindFan, []string{"fan", "fans", "case fans"}},
	{KindCooling, []string{"cooling", "cpu cooler", "cooler", "aio"}},
}

// KindOf clasifica el ítem. La subcategoría tiene prioridad sobre la categoría.
func KindOf(item *entity.InventoryItem) Kind {
	if item == nil {
		return KindOther
	}
	if k := kindOfLabel(item.SubCategory); k != KindOther {
		return k
	}
	return kindOfLabel(item.Category)
}

func kindOfLabel(label string) Kind {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return KindOther
	}
	for _, ka := range kindAliases {
		for _, a := range ka.aliases {
			if l == a {
				return ka.kind
			}
		}
	}
	return KindOther
}

// Is indica si el ítem es del tipo indicado.
func Is(item *entity.InventoryItem, k Kind) bool {
	return KindOf(item) == k
}
