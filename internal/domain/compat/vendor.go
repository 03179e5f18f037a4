package compat

import (
	"regexp"
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/parts"
)

var (
	amdMarkers   = []string{"AMD", "RYZEN", "THREADRIPPER", "ATHLON", "EPYC"}
	intelMarkers = []string{"INTEL", "CORE", "XEON", "PENTIUM", "CELERON"}

	reChipset = regexp.MustCompile(`(?i)\b([abhqwxz]\d{2,3}|trx\d{2}|wrx\d{2})[a-z]?\b`)
)

var chipsetVendors = map[string]Vendor{
	"A320": VendorAMD, "A520": VendorAMD, "A620": VendorAMD,
	"B350": VendorAMD, "B450": VendorAMD, "B550": VendorAMD, "B650": VendorAMD, "B840": VendorAMD, "B850": VendorAMD,
	"X370": VendorAMD, "X470": VendorAMD, "X570": VendorAMD, "X670": VendorAMD, "X870": VendorAMD,
	"TRX40": VendorAMD, "TRX50": VendorAMD, "WRX80": VendorAMD, "WRX90": VendorAMD,

	"H61": VendorIntel, "H81": VendorIntel, "H110": VendorIntel, "H310": VendorIntel, "H410": VendorIntel,
	"H510": VendorIntel, "H610": VendorIntel, "H810": VendorIntel, "H170": VendorIntel, "H270": VendorIntel,
	"H370": VendorIntel, "H470": VendorIntel, "H570": VendorIntel, "H670": VendorIntel, "H770": VendorIntel,
	"B75": VendorIntel, "B85": VendorIntel, "B150": VendorIntel, "B250": VendorIntel, "B360": VendorIntel,
	"B365": VendorIntel, "B460": VendorIntel, "B560": VendorIntel, "B660": VendorIntel, "B760": VendorIntel, "B860": VendorIntel,
	"Z68": VendorIntel, "Z77": VendorIntel, "Z87": VendorIntel, "Z97": VendorIntel, "Z170": VendorIntel,
	"Z270": VendorIntel, "Z370": VendorIntel, "Z390": VendorIntel, "Z490": VendorIntel, "Z590": VendorIntel,
	"Z690": VendorIntel, "Z790": VendorIntel, "Z890": VendorIntel,
	"X79": VendorIntel, "X99": VendorIntel, "X299": VendorIntel, "W680": VendorIntel, "W790": VendorIntel,
	"Q670": VendorIntel,
}

// VendorFromText busca marcadores de fabricante en un texto libre. Los marcadores AMD se evalúan primero
// porque "CORE" aparece también en descripciones como "8-Core".
func VendorFromText(text string) Vendor {
	t := strings.ToUpper(text)
	if t == "" {
		return VendorUnknown
	}
	for _, m := range amdMarkers {
		if strings.Contains(t, m) {
			return VendorAMD
		}
	}
	for _, m := range intelMarkers {
		if strings.Contains(t, m) {
			return VendorIntel
		}
	}
	return VendorUnknown
}

// VendorFromChipset infiere la familia a partir de nombres de chipset presentes en el texto ("B550", "Z790").
func VendorFromChipset(text string) Vendor {
	for _, m := range reChipset.FindAllStringSubmatch(text, -1) {
		if v, ok := chipsetVendors[strings.ToUpper(m[1])]; ok {
			return v
		}
	}
	return VendorUnknown
}

// BrandVendor familia según el spec Brand/Vendor del ítem.
func BrandVendor(item *entity.InventoryItem) Vendor {
	return VendorFromText(item.SpecString(parts.BrandKeys...))
}

// BoardVendor familia de una placa base: marca explícita si es indicativa; si no, chipset (spec o nombre).
func BoardVendor(board *entity.InventoryItem) Vendor {
	if v := BrandVendor(board); v.Known() {
		return v
	}
	if v := VendorFromChipset(board.SpecString(parts.ChipsetKeys...)); v.Known() {
		return v
	}
	return VendorFromChipset(board.Name)
}

// CPUVendor familia de un procesador: primero por socket, luego por marca.
func CPUVendor(cpu *entity.InventoryItem) Vendor {
	if v := SocketVendor(Socket(cpu)); v.Known() {
		return v
	}
	return BrandVendor(cpu)
}

// Socket devuelve el spec de socket normalizado y sin el prefijo "Socket"; vacío si no existe.
func Socket(item *entity.InventoryItem) string {
	if item == nil {
		return ""
	}
	return socketKey(item.SpecString(parts.SocketKeys...))
}

// MemoryType devuelve el spec de tipo de memoria tal cual (recortado).
func MemoryType(item *entity.InventoryItem) string {
	if item == nil {
		return ""
	}
	return item.SpecString(parts.MemoryTypeKeys...)
}
