package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
)

// ItemHandler maneja las peticiones HTTP de ítems de inventario (protegido).
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pieza
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos de la pieza"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID (con componentes si es build o bundle)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category      query  string  false  "Categoría"
// @Param        sub_category  query  string  false  "Subcategoría"
// @Param        status        query  string  false  "Estado"
// @Param        q             query  string  false  "Búsqueda por nombre"
// @Param        limit         query  int     false  "Límite"   default(50)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var in dto.ItemListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Compatible godoc
// @Summary      Piezas compatibles con el ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {array}   dto.CompatibleGroupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/compatible [get]
func (h *ItemHandler) Compatible(c *fiber.Ctx) error {
	out, err := h.uc.Compatible(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Registrar venta (propaga a componentes si es compuesto)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del ítem"
// @Param        body  body  dto.SellItemRequest  true  "Datos de la venta"
// @Success      200   {object}  dto.OperationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/sell [post]
func (h *ItemHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellItemRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Sell(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
