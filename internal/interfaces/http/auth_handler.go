package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agenda-api/internal/application/auth"
	"github.com/jhoicas/agenda-api/internal/application/dto"
)

// AuthHandler maneja login, validación de token y logout.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "funcional, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in, requestMeta(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValidateResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	return c.JSON(dto.ValidateResponse{Valid: true, UserID: GetUserID(c), Role: GetRole(c)})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(c.UserContext(), GetActor(c), requestMeta(c))
	return c.SendStatus(fiber.StatusNoContent)
}
