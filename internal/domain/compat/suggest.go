package compat

import (
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/parts"
)

// Nombres de los grupos de sugerencias.
const (
	GroupMotherboards = "Compatible motherboards"
	GroupCPUs         = "Compatible CPUs"
	GroupRAM          = "Compatible RAM"
)

// Group conjunto nombrado de piezas compatibles con un ítem.
type Group struct {
	Name  string
	Items []*entity.InventoryItem
}

// Suggest devuelve los grupos de piezas del catálogo compatibles con item.
// Excluye el propio ítem y lo vendido o intercambiado; los grupos vacíos se omiten.
func Suggest(item *entity.InventoryItem, catalog []*entity.InventoryItem) []Group {
	if item == nil {
		return nil
	}
	pool := make([]*entity.InventoryItem, 0, len(catalog))
	for _, c := range catalog {
		if c == nil || c.ID == item.ID || c.IsDisposed() {
			continue
		}
		pool = append(pool, c)
	}

	var groups []Group
	switch parts.KindOf(item) {
	case parts.KindCPU:
		if Socket(item) != "" {
			groups = appendGroup(groups, GroupMotherboards, pool, func(c *entity.InventoryItem) bool {
				return parts.Is(c, parts.KindMotherboard) && CheckMotherboard(c, item).Compatible
			})
		}
	case parts.KindMotherboard:
		if Socket(item) != "" {
			groups = appendGroup(groups, GroupCPUs, pool, func(c *entity.InventoryItem) bool {
				return parts.Is(c, parts.KindCPU) && CheckCPU(c, item).Compatible
			})
		}
		groups = appendGroup(groups, GroupRAM, pool, func(c *entity.InventoryItem) bool {
			return parts.Is(c, parts.KindRAM) && memoryTextMatch(MemoryType(item), MemoryType(c))
		})
	case parts.KindRAM:
		groups = appendGroup(groups, GroupMotherboards, pool, func(c *entity.InventoryItem) bool {
			return parts.Is(c, parts.KindMotherboard) && memoryTextMatch(MemoryType(c), MemoryType(item))
		})
	}
	return groups
}

func appendGroup(groups []Group, name string, pool []*entity.InventoryItem, keep func(*entity.InventoryItem) bool) []Group {
	var items []*entity.InventoryItem
	for _, c := range pool {
		if keep(c) {
			items = append(items, c)
		}
	}
	if len(items) == 0 {
		return groups
	}
	return append(groups, Group{Name: name, Items: items})
}

// memoryTextMatch coincidencia textual en ambos sentidos ("DDR4, DDR5" contiene "DDR5"; "DDR4 3200" contiene "DDR4").
func memoryTextMatch(boardType, ramType string) bool {
	b := strings.ToUpper(strings.TrimSpace(boardType))
	r := strings.ToUpper(strings.TrimSpace(ramType))
	if b == "" || r == "" {
		return false
	}
	return strings.Contains(b, r) || strings.Contains(r, b)
}
