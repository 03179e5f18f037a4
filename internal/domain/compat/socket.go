// Package compat decide la compatibilidad CPU ↔ placa base ↔ RAM a partir de los specs de cada pieza.
// Un spec ausente nunca es un conflicto: equivale a "sin restricción".
package compat

import (
	"strings"
	"unicode"
)

// Vendor familia de fabricante inferida (tri-estado).
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorAMD
	VendorIntel
)

func (v Vendor) String() string {
	switch v {
	case VendorAMD:
		return "AMD"
	case VendorIntel:
		return "Intel"
	}
	return "desconocido"
}

// Known indica si la familia fue inferida.
func (v Vendor) Known() bool { return v != VendorUnknown }

// NormalizeSocket pasa a mayúsculas y elimina espacios y guiones: "lga-1700" => "LGA1700".
func NormalizeSocket(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var socketVendors = map[string]Vendor{
	"AM2": VendorAMD, "AM2+": VendorAMD, "AM3": VendorAMD, "AM3+": VendorAMD,
	"AM4": VendorAMD, "AM5": VendorAMD, "FM1": VendorAMD, "FM2": VendorAMD, "FM2+": VendorAMD,
	"TR4": VendorAMD, "STRX4": VendorAMD, "STR5": VendorAMD, "SP3": VendorAMD, "SP5": VendorAMD, "SWRX8": VendorAMD,

	"LGA775": VendorIntel, "LGA1150": VendorIntel, "LGA1151": VendorIntel, "LGA1155": VendorIntel,
	"LGA1156": VendorIntel, "LGA1200": VendorIntel, "LGA1366": VendorIntel, "LGA1700": VendorIntel,
	"LGA1851": VendorIntel, "LGA2011": VendorIntel, "LGA20113": VendorIntel, "LGA2066": VendorIntel,
	"LGA3647": VendorIntel, "LGA4677": VendorIntel,

	// Sockets PGA antiguos que se listan como "Socket 478", "Socket A".
	"A": VendorAMD, "754": VendorAMD, "939": VendorAMD, "940": VendorAMD,
	"370": VendorIntel, "423": VendorIntel, "478": VendorIntel, "604": VendorIntel,
}

// socketKey forma normalizada sin el prefijo "Socket" de los listados ("Socket AM4" => "AM4").
func socketKey(socket string) string {
	return strings.TrimPrefix(NormalizeSocket(socket), "SOCKET")
}

// SocketVendor clasifica un socket (normalizado o no) por tabla y, si no figura, por prefijo.
func SocketVendor(socket string) Vendor {
	s := socketKey(socket)
	if s == "" {
		return VendorUnknown
	}
	if v, ok := socketVendors[s]; ok {
		return v
	}
	switch {
	case strings.HasPrefix(s, "AM"):
		return VendorAMD
	case strings.HasPrefix(s, "LGA"), strings.HasPrefix(s, "S"):
		return VendorIntel
	}
	return VendorUnknown
}

var socketRAM = map[string][]string{
	"AM2": {"DDR2"}, "AM2+": {"DDR2"}, "AM3": {"DDR3"}, "AM3+": {"DDR3"},
	"FM1": {"DDR3"}, "FM2": {"DDR3"}, "FM2+": {"DDR3"},
	"AM4": {"DDR4"}, "AM5": {"DDR5"},
	"TR4": {"DDR4"}, "STRX4": {"DDR4"}, "STR5": {"DDR5"},

	"LGA775": {"DDR2", "DDR3"}, "LGA1156": {"DDR3"}, "LGA1366": {"DDR3"},
	"LGA1155": {"DDR3"}, "LGA1150": {"DDR3"}, "LGA2011": {"DDR3"},
	"LGA1151": {"DDR4"}, "LGA1200": {"DDR4"}, "LGA2066": {"DDR4"}, "LGA20113": {"DDR4"},
	"LGA1700": {"DDR4", "DDR5"}, "LGA1851": {"DDR5"}, "LGA4677": {"DDR5"},
}

// SocketRAM generaciones de RAM admitidas por el socket; nil si no se conoce.
func SocketRAM(socket string) []string {
	return socketRAM[socketKey(socket)]
}
