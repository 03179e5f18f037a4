package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Specs bolsa libre de atributos técnicos (string o número), p. ej. "Socket" o "Memory Type".
type Specs map[string]any

// Get busca la clave sin distinguir mayúsculas. Prefiere la coincidencia exacta;
// si no la hay, devuelve la primera en orden alfabético de claves. Clave ausente => (nil, false).
func (s Specs) Get(key string) (any, bool) {
	if len(s) == 0 {
		return nil, false
	}
	if v, ok := s[key]; ok {
		return v, true
	}
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(key))
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if fold.String(strings.TrimSpace(k)) == want {
			return s[k], true
		}
	}
	return nil, false
}

// String devuelve el atributo como texto (recortado); vacío si no existe.
func (s Specs) String(key string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// First devuelve el primer atributo no vacío entre varias claves alternativas.
func (s Specs) First(keys ...string) string {
	for _, k := range keys {
		if v := s.String(k); v != "" {
			return v
		}
	}
	return ""
}

// Clone copia el mapa (los valores son escalares).
func (s Specs) Clone() Specs {
	if s == nil {
		return nil
	}
	c := make(Specs, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}
