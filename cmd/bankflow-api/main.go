package main

import (
	"context"
	"os"

	"github.com/lcampos/bankflow/pkg/cmd"
	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "bankflow-api",
		Usage:                 "Run banking workflow processes over the core-banking API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "fineract-url",
				Usage:    "Base URL of the core-banking API",
				Required: true,
				Sources:  cli.EnvVars("FINERACT_URL"),
			},
			&cli.StringFlag{
				Name:    "fineract-tenant",
				Usage:   "Core-banking tenant identifier",
				Value:   "default",
				Sources: cli.EnvVars("FINERACT_TENANT"),
			},
			&cli.StringFlag{
				Name:     "fineract-username",
				Usage:    "Core-banking API username",
				Required: true,
				Sources:  cli.EnvVars("FINERACT_USERNAME"),
			},
			&cli.StringFlag{
				Name:     "fineract-password",
				Usage:    "Core-banking API password",
				Required: true,
				Sources:  cli.EnvVars("FINERACT_PASSWORD"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export delegate execution spans over OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Bankflow API")

			banking := corebanking.NewHTTPClient(corebanking.Config{
				BaseURL:  command.String("fineract-url"),
				Tenant:   command.String("fineract-tenant"),
				Username: command.String("fineract-username"),
				Password: command.String("fineract-password"),
			}, logger)

			registry := cmd.NewRegistry(banking, logger)

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			tracer, err := newTracer(ctx, command.Bool("tracing"))
			if err != nil {
				return err
			}

			runner := engine.NewRunner(eventBus, tracer, logger)
			dispatcher := engine.NewDispatcher(registry, runner, eventBus, logger)
			cmd.RegisterDefinitions(dispatcher)

			api := NewAPI(logger, dispatcher, registry)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
