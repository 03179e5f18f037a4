package parts

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxTokenLen longitud máxima (en runas) de un token extraído de un nombre.
const MaxTokenLen = 20

var (
	reRyzen        = regexp.MustCompile(`(?i)\bryzen\s+(?:threadripper\s+)?\d\s+(?:pro\s+)?\d{4}[a-z0-9]*`)
	reThreadripper = regexp.MustCompile(`(?i)\bthreadripper\s+(?:pro\s+)?\d{4}[a-z0-9]*`)
	reCoreUltra    = regexp.MustCompile(`(?i)\bcore\s+ultra\s+\d\s+\d{3}[a-z]*`)
	reCoreI        = regexp.MustCompile(`(?i)\bi([3579])[-\s]?(\d{4,5}[a-z]*)\b`)
	reXeon         = regexp.MustCompile(`(?i)\bxeon\s+[a-z]?-?\d{4}[a-z0-9]*`)

	reGPU = regexp.MustCompile(`(?i)\b(rtx|gtx|rx|arc|gt)\s*-?\s*([a-z]?\d{3,4})(?:\s*(ti\s+super|ti|super|xtx|xt|gre))?\b`)

	reRAMKit  = regexp.MustCompile(`(?i)\b(\d+)\s*x\s*(\d+)\s*gb\b`)
	reRAMSize = regexp.MustCompile(`(?i)\b(\d+)\s*gb\b`)
	reDDR     = regexp.MustCompile(`(?i)\bDDR([2-5])`)

	reCapacity = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(tb|gb)\b`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// CPUToken forma corta del modelo de procesador, p. ej. "Ryzen 7 5800X" o "i7-12700K".
func CPUToken(name string) string {
	for _, re := range []*regexp.Regexp{reRyzen, reThreadripper, reCoreUltra, reXeon} {
		if m := re.FindString(name); m != "" {
			return Bound(titleWords(m))
		}
	}
	if m := reCoreI.FindStringSubmatch(name); m != nil {
		return Bound("i" + m[1] + "-" + strings.ToUpper(m[2]))
	}
	return Bound(name)
}

// GPUToken extrae el patrón de modelo de la tarjeta, p. ej. "RTX 4070 Ti".
func GPUToken(name string) string {
	m := reGPU.FindStringSubmatch(name)
	if m == nil {
		return Bound(name)
	}
	tok := strings.ToUpper(m[1]) + " " + strings.ToUpper(m[2])
	switch strings.ToLower(reSpaces.ReplaceAllString(m[3], " ")) {
	case "":
	case "ti":
		tok += " Ti"
	case "ti super":
		tok += " Ti SUPER"
	default:
		tok += " " + strings.ToUpper(m[3])
	}
	return Bound(tok)
}

// RAMToken capacidad total y generación, p. ej. "32GB DDR5". memType es el spec de tipo de memoria (puede ir vacío).
func RAMToken(name, memType string) string {
	var parts []string
	if m := reRAMKit.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		size, _ := strconv.Atoi(m[2])
		parts = append(parts, strconv.Itoa(n*size)+"GB")
	} else if m := reRAMSize.FindStringSubmatch(name); m != nil {
		parts = append(parts, m[1]+"GB")
	}
	gen := Generation(memType)
	if gen == "" {
		gen = Generation(name)
	}
	if gen != "" {
		parts = append(parts, gen)
	}
	if len(parts) == 0 {
		return Bound(name)
	}
	return Bound(strings.Join(parts, " "))
}

// StorageToken capacidad y medio, p. ej. "1TB NVMe".
func StorageToken(name string) string {
	m := reCapacity.FindStringSubmatch(name)
	if m == nil {
		return Bound(name)
	}
	tok := m[1] + strings.ToUpper(m[2])
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "NVME"):
		tok += " NVMe"
	case strings.Contains(upper, "SSD"):
		tok += " SSD"
	case strings.Contains(upper, "HDD"):
		tok += " HDD"
	}
	return Bound(tok)
}

// Generation devuelve el primer token de generación DDR presente en el texto ("DDR4 3200" => "DDR4").
func Generation(s string) string {
	m := reDDR.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return "DDR" + m[1]
}

// Generations devuelve todas las generaciones DDR listadas ("DDR4, DDR5" o "DDR4/DDR5"), sin repetir.
func Generations(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range reDDR.FindAllStringSubmatch(s, -1) {
		g := "DDR" + m[1]
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// Bound recorta espacios y limita el texto a MaxTokenLen runas sin cortar palabras cuando es posible.
func Bound(s string) string {
	return Shorten(s, MaxTokenLen)
}

// Shorten limita s a max runas, cortando en el último espacio si lo hay.
func Shorten(s string, max int) string {
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	cut := string(r[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}

// titleWords normaliza espacios y pone en mayúscula la inicial de palabras alfabéticas ("ryzen 7 5800x" => "Ryzen 7 5800X").
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lw := strings.ToLower(w)
		switch {
		case lw == "pro" || lw == "ultra" || lw == "core" || lw == "ryzen" || lw == "threadripper" || lw == "xeon":
			words[i] = strings.ToUpper(lw[:1]) + lw[1:]
		default:
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}
