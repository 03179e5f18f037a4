package compat

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/parts"
)

// Slots con regla de compatibilidad. Cualquier otro slot es libre.
const (
	SlotCPU         = "cpu"
	SlotMotherboard = "motherboard"
	SlotRAM         = "ram"
)

// Verdict resultado de evaluar un candidato. Reason solo se llena al rechazar.
type Verdict struct {
	Compatible bool
	Reason     string
}

func compatible() Verdict { return Verdict{Compatible: true} }

func reject(format string, args ...any) Verdict {
	return Verdict{Compatible: false, Reason: fmt.Sprintf(format, args...)}
}

// Context selecciones actuales de la build que restringen a los candidatos.
type Context struct {
	CPU         *entity.InventoryItem
	Motherboard *entity.InventoryItem
}

// Check evalúa si candidate puede ocupar slotID dada la build en curso.
func Check(slotID string, candidate *entity.InventoryItem, ctx Context) Verdict {
	switch slotID {
	case SlotCPU:
		return CheckCPU(candidate, ctx.Motherboard)
	case SlotMotherboard:
		return CheckMotherboard(candidate, ctx.CPU)
	case SlotRAM:
		return CheckRAM(candidate, ctx)
	}
	return compatible()
}

// CheckCPU valida un procesador contra la placa seleccionada. Si la placa declara socket,
// el CPU debe declarar el mismo: aquí la ausencia de spec sí rechaza.
func CheckCPU(cpu, board *entity.InventoryItem) Verdict {
	if board == nil {
		return compatible()
	}
	boardSocket := Socket(board)
	if boardSocket == "" {
		return compatible()
	}
	cpuSocket := Socket(cpu)
	if cpuSocket == "" {
		return reject("el CPU no declara socket; la placa requiere %s", boardSocket)
	}
	if cpuSocket != boardSocket {
		return reject("socket %s incompatible con la placa (%s)", cpuSocket, boardSocket)
	}
	if family := SocketVendor(boardSocket); family.Known() {
		if v := BrandVendor(cpu); v.Known() && v != family {
			return reject("CPU %s en una placa de plataforma %s", v, family)
		}
	}
	return compatible()
}

// CheckMotherboard es el espejo de CheckCPU: valida una placa contra el CPU seleccionado.
// Además infiere la familia de la placa por marca o chipset.
func CheckMotherboard(board, cpu *entity.InventoryItem) Verdict {
	if cpu == nil {
		return compatible()
	}
	cpuSocket := Socket(cpu)
	if cpuSocket == "" {
		return compatible()
	}
	boardSocket := Socket(board)
	if boardSocket == "" {
		return reject("la placa no declara socket; el CPU requiere %s", cpuSocket)
	}
	if boardSocket != cpuSocket {
		return reject("socket %s incompatible con el CPU (%s)", boardSocket, cpuSocket)
	}
	family := SocketVendor(cpuSocket)
	cpuBrand := BrandVendor(cpu)
	if family.Known() && cpuBrand.Known() && family != cpuBrand {
		return reject("CPU %s con socket de plataforma %s", cpuBrand, family)
	}
	if !family.Known() {
		family = cpuBrand
	}
	if bv := BoardVendor(board); family.Known() && bv.Known() && bv != family {
		return reject("placa %s para un CPU %s", bv, family)
	}
	return compatible()
}

// CheckRAM valida la generación de memoria. El tipo declarado por la placa tiene prioridad;
// si no lo hay se usa la tabla de generaciones por socket del CPU.
func CheckRAM(ram *entity.InventoryItem, ctx Context) Verdict {
	gen := parts.Generation(MemoryType(ram))
	if ctx.Motherboard != nil {
		if allowed := parts.Generations(MemoryType(ctx.Motherboard)); len(allowed) > 0 {
			if gen == "" || contains(allowed, gen) {
				return compatible()
			}
			return reject("la placa admite %s; la RAM es %s", strings.Join(allowed, "/"), gen)
		}
	}
	if ctx.CPU != nil {
		socket := Socket(ctx.CPU)
		if allowed := SocketRAM(socket); len(allowed) > 0 && gen != "" && !contains(allowed, gen) {
			return reject("el socket %s admite %s; la RAM es %s", socket, strings.Join(allowed, "/"), gen)
		}
	}
	return compatible()
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
