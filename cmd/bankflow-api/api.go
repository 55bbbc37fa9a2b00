// Package main provides the bankflow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/registry"
	"github.com/lcampos/bankflow/pkg/web"
)

type API struct {
	logger     *slog.Logger
	dispatcher *engine.Dispatcher
	registry   *registry.Registry
	validate   *validator.Validate
}

func NewAPI(logger *slog.Logger, dispatcher *engine.Dispatcher, registry *registry.Registry) *API {
	return &API{
		logger:     logger,
		dispatcher: dispatcher,
		registry:   registry,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.dispatcher, a.registry, a.validate, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Bankflow API")
	})

	p := app.Group("/processes")
	p.Post("/", handlers.StartProcess)
	p.Get("/:id/variables", handlers.GetVariables)
	p.Get("/:id/tasks", handlers.ListTasks)
	p.Delete("/:id", handlers.TerminateProcess)

	app.Post("/tasks/:id/complete", handlers.CompleteTask)
	app.Get("/delegates", handlers.ListDelegates)

	app.Post("/clients/onboard", handlers.OnboardClient)
	app.Post("/loans/originate", handlers.OriginateLoan)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
