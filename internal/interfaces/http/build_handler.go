package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hardware/internal/application/builds"
	"github.com/jhoicas/inventario-hardware/internal/application/dto"
)

// BuildHandler builds, bundles y el editor de slots (protegido).
type BuildHandler struct {
	uc *builds.BuildUseCase
}

// NewBuildHandler construye el handler.
func NewBuildHandler(uc *builds.BuildUseCase) *BuildHandler {
	return &BuildHandler{uc: uc}
}

// Assemble godoc
// @Summary      Ensamblar PC a partir de piezas en stock
// @Tags         builds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssembleRequest  true  "Nombre y componentes"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/builds [post]
func (h *BuildHandler) Assemble(c *fiber.Ctx) error {
	var in dto.AssembleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Assemble(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Edit godoc
// @Summary      Reensamblar una build o bundle existente
// @Tags         builds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del compuesto"
// @Param        body  body  dto.AssembleRequest  true  "Nombre y componentes"
// @Success      200   {object}  dto.OperationResponse
// @Router       /api/builds/{id} [put]
func (h *BuildHandler) Edit(c *fiber.Ctx) error {
	var in dto.AssembleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Edit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Dismantle godoc
// @Summary      Desarmar build o bundle (devuelve o restaura componentes)
// @Tags         builds
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del compuesto"
// @Success      200  {object}  dto.OperationResponse
// @Router       /api/builds/{id}/dismantle [post]
func (h *BuildHandler) Dismantle(c *fiber.Ctx) error {
	out, err := h.uc.Dismantle(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateBundle godoc
// @Summary      Crear bundle con piezas en stock
// @Tags         bundles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssembleRequest  true  "Nombre y componentes"
// @Success      201   {object}  dto.OperationResponse
// @Router       /api/bundles [post]
func (h *BuildHandler) CreateBundle(c *fiber.Ctx) error {
	var in dto.AssembleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateBundle(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RetroBundle godoc
// @Summary      Agrupar ventas ya registradas en un bundle retroactivo
// @Tags         bundles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RetroBundleRequest  true  "Ítems vendidos"
// @Success      201   {object}  dto.RetroBundleResponse
// @Router       /api/bundles/retro [post]
func (h *BuildHandler) RetroBundle(c *fiber.Ctx) error {
	var in dto.RetroBundleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RetroBundle(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StartDraft godoc
// @Summary      Abrir el editor de slots (vacío o desde un compuesto)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartDraftRequest  false  "Compuesto a editar"
// @Success      201   {object}  dto.DraftResponse
// @Router       /api/drafts [post]
func (h *BuildHandler) StartDraft(c *fiber.Ctx) error {
	var in dto.StartDraftRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return err
		}
	}
	out, err := h.uc.StartDraft(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDraft godoc
// @Summary      Estado del borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/drafts/{id} [get]
func (h *BuildHandler) GetDraft(c *fiber.Ctx) error {
	out, err := h.uc.GetDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteDraft descarta el borrador sin tocar el inventario.
func (h *BuildHandler) DeleteDraft(c *fiber.Ctx) error {
	if err := h.uc.DeleteDraft(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RenameDraft godoc
// @Summary      Renombrar borrador (vacío vuelve al nombre automático)
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del borrador"
// @Param        body  body  dto.RenameDraftRequest  true  "Nombre"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/drafts/{id}/name [put]
func (h *BuildHandler) RenameDraft(c *fiber.Ctx) error {
	var in dto.RenameDraftRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RenameDraft(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ToggleSlot godoc
// @Summary      Seleccionar o quitar una pieza de un slot
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del borrador"
// @Param        slot  path  string                 true  "Slot (cpu, gpu, ram, ...)"
// @Param        body  body  dto.ToggleSlotRequest  true  "Ítem"
// @Success      200   {object}  dto.DraftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/slots/{slot}/toggle [post]
func (h *BuildHandler) ToggleSlot(c *fiber.Ctx) error {
	var in dto.ToggleSlotRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ToggleSlot(c.UserContext(), c.Params("id"), c.Params("slot"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Candidates godoc
// @Summary      Piezas elegibles y compatibles para un slot
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del borrador"
// @Param        slot  path   string  true   "Slot"
// @Param        q     query  string  false  "Filtro por nombre o specs"
// @Success      200   {object}  dto.CandidatesResponse
// @Router       /api/drafts/{id}/slots/{slot}/candidates [get]
func (h *BuildHandler) Candidates(c *fiber.Ctx) error {
	out, err := h.uc.Candidates(c.UserContext(), c.Params("id"), c.Params("slot"), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SaveDraft godoc
// @Summary      Confirmar el borrador como build (alta o reensamblado)
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.OperationResponse
// @Router       /api/drafts/{id}/save [post]
func (h *BuildHandler) SaveDraft(c *fiber.Ctx) error {
	out, err := h.uc.SaveDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
