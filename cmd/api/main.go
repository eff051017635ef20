package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/agenda-api/docs"
	"github.com/jhoicas/agenda-api/internal/application/auth"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/infrastructure/memcache"
	"github.com/jhoicas/agenda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agenda-api/internal/infrastructure/redisbus"
	httpRouter "github.com/jhoicas/agenda-api/internal/interfaces/http"
	"github.com/jhoicas/agenda-api/pkg/config"
	"github.com/jhoicas/agenda-api/pkg/logger"
)

// @title        Agenda API
// @version      1.0
// @description  Agenda comercial con visibilidad y permisos por jerarquía.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		version, _ := postgres.MigrationVersion(ctx, pool)
		log.Info().Int64("version", version).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	hierarchyRepo := postgres.NewHierarchyRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	userLogRepo := postgres.NewUserLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Fuente de lectura del organigrama: snapshot en memoria o consultas directas.
	var edgeSource hierarchy.EdgeSource = hierarchyRepo
	var orgOpts []org.Option
	if cfg.Hierarchy.CacheEnabled {
		cache := memcache.NewHierarchyCache(hierarchyRepo, cfg.Hierarchy.CacheTTL)
		edgeSource = cache
		orgOpts = append(orgOpts, org.WithCache(cache))

		if cfg.Redis.URL != "" {
			rdb, err := redisbus.NewClient(ctx, cfg.Redis.URL)
			if err != nil {
				// Sin bus, cada instancia converge al vencer el TTL.
				log.Warn().Err(err).Msg("redis no disponible; invalidación solo local")
			} else {
				defer rdb.Close()
				bus := redisbus.NewInvalidator(rdb, cfg.Redis.Channel, cache, log.Component("redisbus"))
				orgOpts = append(orgOpts, org.WithPublisher(bus))
				go func() {
					if err := bus.Listen(ctx); err != nil && ctx.Err() == nil {
						log.Error().Err(err).Msg("suscripción de invalidación finalizada")
					}
				}()
			}
		}
	}

	orgSvc := org.NewService(hierarchy.NewEngine(edgeSource), hierarchyRepo, userRepo, log.Zerolog(), orgOpts...)
	auditUC := usecase.NewAuditUseCase(userLogRepo, orgSvc, log.Zerolog())
	eventUC := usecase.NewEventUseCase(eventRepo, txRunner, orgSvc, auditUC)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auditUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Agenda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		EventUC:        eventUC,
		UserUC:         userUC,
		AuditUC:        auditUC,
		Org:            orgSvc,
		JWTSecret:      cfg.JWT.Secret,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
