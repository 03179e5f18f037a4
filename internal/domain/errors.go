package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrEmptyBuildName    = errors.New("el nombre de la build es obligatorio")
	ErrEmptySelection    = errors.New("la build no tiene componentes seleccionados")
	ErrRequiredSlotEmpty = errors.New("hay slots obligatorios sin componente")
	ErrUnknownSlot       = errors.New("slot desconocido")
	ErrNotComposite      = errors.New("el ítem no es una build ni un bundle")
	ErrItemUnavailable   = errors.New("el ítem no está disponible para esta operación")
	ErrAlreadyDisposed   = errors.New("el ítem ya fue vendido o intercambiado")
	ErrEmptyTrade        = errors.New("el trade debe incluir ítems recibidos o dinero")
	ErrIncompatible      = errors.New("la pieza no es compatible con la selección actual")
)
