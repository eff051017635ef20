package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/agenda-api/internal/application/auth"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	EventUC        *usecase.EventUseCase
	UserUC         *usecase.UserUseCase
	AuditUC        *usecase.AuditUseCase
	Org            *org.Service
	JWTSecret      string
	MetricsEnabled bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/validate", authMW, authHandler.Validate)
	authGroup.Post("/logout", authMW, authHandler.Logout)

	// Events
	eventHandler := NewEventHandler(deps.EventUC)
	events := api.Group("/events", authMW)
	events.Get("/", eventHandler.List)
	events.Post("/", eventHandler.Create)
	events.Get("/:id", eventHandler.GetByID)
	events.Put("/:id", eventHandler.Update)
	events.Patch("/:id/feedback", eventHandler.UpdateFeedback)
	events.Put("/:id/feedback", eventHandler.UpdateFeedback)
	events.Delete("/:id", eventHandler.Delete)

	// Users (las rutas fijas van antes de /:id)
	userHandler := NewUserHandler(deps.UserUC, deps.Org)
	users := api.Group("/users", authMW)
	users.Get("/me/subordinates", userHandler.MySubordinates)
	users.Get("/all", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Get("/:id/subordinates", userHandler.Subordinates)
	users.Get("/:id/superior", userHandler.Superior)
	users.Get("/:id/supervisors", userHandler.Supervisors)

	// Hierarchy (admin)
	hierarchyHandler := NewHierarchyHandler(deps.Org)
	edges := api.Group("/hierarchy/edges", authMW, RequireRole(entity.RoleAdmin))
	edges.Get("/", hierarchyHandler.ListEdges)
	edges.Post("/", hierarchyHandler.SetSuperior)
	edges.Delete("/:subordinateId", hierarchyHandler.RemoveEdge)

	// User logs
	logHandler := NewUserLogHandler(deps.AuditUC)
	logs := api.Group("/user-logs", authMW)
	logs.Post("/", logHandler.Create)
	logs.Get("/", logHandler.List)
}
