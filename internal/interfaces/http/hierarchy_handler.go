package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/org"
)

// HierarchyHandler mantenimiento de aristas del organigrama (solo admin).
type HierarchyHandler struct {
	org *org.Service
}

// NewHierarchyHandler construye el handler.
func NewHierarchyHandler(orgSvc *org.Service) *HierarchyHandler {
	return &HierarchyHandler{org: orgSvc}
}

// SetSuperior godoc
// @Summary      Fijar superior directo
// @Tags         hierarchy
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetSuperiorRequest  true  "subordinate_id, superior_id"
// @Success      200   {object}  dto.HierarchyEdgeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hierarchy/edges [post]
func (h *HierarchyHandler) SetSuperior(c *fiber.Ctx) error {
	var in dto.SetSuperiorRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.org.SetSuperior(c.UserContext(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveEdge godoc
// @Summary      Quitar superior directo
// @Tags         hierarchy
// @Security     Bearer
// @Param        subordinateId  path  string  true  "ID del subordinado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hierarchy/edges/{subordinateId} [delete]
func (h *HierarchyHandler) RemoveEdge(c *fiber.Ctx) error {
	if err := h.org.RemoveEdge(c.UserContext(), GetActor(c), c.Params("subordinateId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEdges godoc
// @Summary      Volcar aristas
// @Tags         hierarchy
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.HierarchyEdgeResponse
// @Router       /api/hierarchy/edges [get]
func (h *HierarchyHandler) ListEdges(c *fiber.Ctx) error {
	out, err := h.org.ListEdges(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
