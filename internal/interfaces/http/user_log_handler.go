package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
)

// UserLogHandler auditoría de acciones de usuario.
type UserLogHandler struct {
	uc *usecase.AuditUseCase
}

// NewUserLogHandler construye el handler.
func NewUserLogHandler(uc *usecase.AuditUseCase) *UserLogHandler {
	return &UserLogHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar acción del cliente
// @Tags         user-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserLogRequest  true  "Registro"
// @Success      201   {object}  dto.UserLogResponse
// @Router       /api/user-logs [post]
func (h *UserLogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserLogRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Record(c.UserContext(), GetActor(c), in, requestMeta(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar auditoría del equipo
// @Tags         user-logs
// @Security     Bearer
// @Produce      json
// @Param        user_id      query  string  false  "Usuario"
// @Param        action_type  query  string  false  "Acción"
// @Param        status       query  string  false  "SUCCESS, FAILURE o INFO"
// @Param        start        query  string  false  "Desde"
// @Param        end          query  string  false  "Hasta"
// @Success      200  {array}  dto.UserLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/user-logs [get]
func (h *UserLogHandler) List(c *fiber.Ctx) error {
	var q dto.UserLogQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
