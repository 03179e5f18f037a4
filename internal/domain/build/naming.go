package build

import (
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain/compat"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/parts"
)

const (
	namePrefix    = "PC "
	nameSeparator = " / "
	ellipsis      = "..."
)

// DeriveName arma el nombre de la build con los tokens de CPU, GPU, RAM y Storage.
// Devuelve vacío si ninguno está seleccionado; se trunca con "..." al superar max runas.
func DeriveName(cpu, gpu, ram, storage *entity.InventoryItem, max int) string {
	var tokens []string
	if cpu != nil {
		tokens = append(tokens, parts.CPUToken(cpu.Name))
	}
	if gpu != nil {
		tokens = append(tokens, parts.GPUToken(gpu.Name))
	}
	if ram != nil {
		tokens = append(tokens, parts.RAMToken(ram.Name, compat.MemoryType(ram)))
	}
	if storage != nil {
		tokens = append(tokens, parts.StorageToken(storage.Name))
	}
	tokens = nonEmpty(tokens)
	if len(tokens) == 0 {
		return ""
	}
	return Truncate(namePrefix+strings.Join(tokens, nameSeparator), max)
}

// Truncate limita s a max runas incluyendo la elipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	keep := max - len(ellipsis)
	if keep < 1 {
		return string(r[:max])
	}
	return strings.TrimSpace(string(r[:keep])) + ellipsis
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
