package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: se usa el primer error que coincide con errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmptyBuildName, fiber.StatusBadRequest, "EMPTY_BUILD_NAME"},
	{domain.ErrEmptySelection, fiber.StatusBadRequest, "EMPTY_SELECTION"},
	{domain.ErrRequiredSlotEmpty, fiber.StatusBadRequest, "REQUIRED_SLOT_EMPTY"},
	{domain.ErrUnknownSlot, fiber.StatusBadRequest, "UNKNOWN_SLOT"},
	{domain.ErrEmptyTrade, fiber.StatusBadRequest, "EMPTY_TRADE"},
	{domain.ErrNotComposite, fiber.StatusBadRequest, "NOT_COMPOSITE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrItemUnavailable, fiber.StatusConflict, "ITEM_UNAVAILABLE"},
	{domain.ErrAlreadyDisposed, fiber.StatusConflict, "ALREADY_DISPOSED"},
	{domain.ErrIncompatible, fiber.StatusConflict, "INCOMPATIBLE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// ValidationError errores de validación por campo (nombre JSON -> mensaje).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validación fallida" }

// statusFor devuelve el status HTTP y el código de error para err.
func statusFor(err error) (int, string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, "VALIDATION"
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		switch ferr.Code {
		case fiber.StatusBadRequest:
			return ferr.Code, "INVALID_BODY"
		case fiber.StatusNotFound:
			return ferr.Code, "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			return ferr.Code, "METHOD_NOT_ALLOWED"
		}
		return ferr.Code, "HTTP_ERROR"
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// ErrorHandler traduce los errores que devuelven los handlers a dto.ErrorResponse.
// Los errores internos se registran y no exponen su detalle al cliente.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		resp := dto.ErrorResponse{Code: code, Message: err.Error()}

		var verr *ValidationError
		if errors.As(err, &verr) {
			resp.Fields = verr.Fields
		}
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
			resp.Message = "error interno del servidor"
		}
		return c.Status(status).JSON(resp)
	}
}
