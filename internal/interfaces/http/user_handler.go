package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
)

// UserHandler consultas de usuarios y del equipo.
type UserHandler struct {
	users *usecase.UserUseCase
	org   *org.Service
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, orgSvc *org.Service) *UserHandler {
	return &UserHandler{users: users, org: orgSvc}
}

// MySubordinates godoc
// @Summary      Equipo del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamMemberResponse
// @Router       /api/users/me/subordinates [get]
func (h *UserHandler) MySubordinates(c *fiber.Ctx) error {
	out, err := h.org.Team(c.UserContext(), GetActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Nombre o funcional (sin acentos)"
// @Param        role  query  string  false  "Rol"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users/all [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.users.List(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Subordinates godoc
// @Summary      Subordinados directos
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users/{id}/subordinates [get]
func (h *UserHandler) Subordinates(c *fiber.Ctx) error {
	out, err := h.org.DirectSubordinates(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Superior godoc
// @Summary      Superior directo
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/superior [get]
func (h *UserHandler) Superior(c *fiber.Ctx) error {
	out, err := h.org.Superior(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Supervisors godoc
// @Summary      Supervisores bajo un coordenador o gerente
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del coordenador o gerente"
// @Success      200  {array}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/supervisors [get]
func (h *UserHandler) Supervisors(c *fiber.Ctx) error {
	out, err := h.org.Supervisors(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
