package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/trade"
)

// TradeHandler intercambios de un ítem propio por ítems recibidos y/o dinero (protegido).
type TradeHandler struct {
	uc *trade.TradeUseCase
}

// NewTradeHandler construye el handler.
func NewTradeHandler(uc *trade.TradeUseCase) *TradeHandler {
	return &TradeHandler{uc: uc}
}

// Preview godoc
// @Summary      Calcular totales del trade sin registrarlo
// @Tags         trades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TradeRequest  true  "Trade"
// @Success      200   {object}  dto.TradeSummaryResponse
// @Router       /api/trades/preview [post]
func (h *TradeHandler) Preview(c *fiber.Ctx) error {
	var in dto.TradeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Preview(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Execute godoc
// @Summary      Registrar trade
// @Tags         trades
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TradeRequest  true  "Trade"
// @Success      201   {object}  dto.TradeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trades [post]
func (h *TradeHandler) Execute(c *fiber.Ctx) error {
	var in dto.TradeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
