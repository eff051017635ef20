package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/domain"
)

// localErr guarda el error original para que RequestLogger lo registre.
const localErr = "request_error"

// fail traduce un error de dominio a la respuesta HTTP. Los mensajes de 403 son fijos y
// no revelan nada de la estructura jerárquica.
func fail(c *fiber.Ctx, err error) error {
	c.Locals(localErr, err)
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrReassignmentDenied):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "REASSIGNMENT_DENIED", Message: "sin permiso para asignar el evento a ese usuario"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso para esta acción"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "no autenticado"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrTransient):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "UNAVAILABLE", Message: "servicio no disponible, intente más tarde"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// ErrorHandler manejador de Fiber para errores no capturados por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return fail(c, err)
}
