package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
)

// EventHandler maneja la agenda de eventos (protegido).
type EventHandler struct {
	uc *usecase.EventUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *usecase.EventUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// List godoc
// @Summary      Listar eventos visibles
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        start     query  string  false  "Desde (RFC3339 o AAAA-MM-DD)"
// @Param        end       query  string  false  "Hasta (RFC3339 o AAAA-MM-DD)"
// @Param        type      query  string  false  "Tipo de evento"
// @Param        owner_id  query  string  false  "Dueño (dentro del alcance)"
// @Param        limit     query  int     false  "Límite (máx. 500)"
// @Param        offset    query  int     false  "Offset"
// @Success      200  {object}  dto.EventListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	var q dto.EventListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "Datos del evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in, requestMeta(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar evento
// @Description  Un supervisor_id distinto del actual reasigna el evento (solo gerente y admin).
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del evento"
// @Param        body  body  dto.UpdateEventRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.EventResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEventRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in, requestMeta(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateFeedback godoc
// @Summary      Actualizar tratativa
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del evento"
// @Param        body  body  dto.UpdateFeedbackRequest  true  "Tratativa"
// @Success      200   {object}  dto.EventResponse
// @Router       /api/events/{id}/feedback [patch]
func (h *EventHandler) UpdateFeedback(c *fiber.Ctx) error {
	var in dto.UpdateFeedbackRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateFeedback(c.UserContext(), GetActor(c), c.Params("id"), in, requestMeta(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento
// @Tags         events
// @Security     Bearer
// @Param        id   path  string  true  "ID del evento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id"), requestMeta(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
