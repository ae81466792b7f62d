package cmd

import (
	"context"
	"fmt"

	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/wire"
	"boat-ticketing/migrations"
	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/cache"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/database"
	"boat-ticketing/pkg/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// NewApp returns the command line entry point. Both commands load the same
// configuration and logger.
func NewApp(config *utils.Config, logger *zap.Logger) *cli.App {
	return &cli.App{
		Name:  config.App.Name,
		Usage: "boat ticketing and freight back office",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending migrations before serving",
					},
				},
				Action: func(c *cli.Context) error {
					return serve(c.Context, config, logger, c.Bool("migrate"))
				},
			},
			{
				Name:  "migrate",
				Usage: "apply pending database migrations and exit",
				Action: func(c *cli.Context) error {
					db, err := database.InitDB(config.Database)
					if err != nil {
						return fmt.Errorf("connect database: %w", err)
					}
					defer db.Close()

					return migrations.Apply(c.Context, db, logger)
				},
			},
		},
	}
}

func serve(ctx context.Context, config *utils.Config, logger *zap.Logger, migrate bool) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	if migrate {
		if err := migrations.Apply(ctx, db, logger); err != nil {
			return err
		}
	}

	publisher, err := broker.NewPublisher(config.Broker, logger)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close publisher", zap.Error(err))
		}
	}()

	rdb := cache.NewRedisClient(config.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, config, publisher, rdb, clock.NewSystem(), logger)

	return APIServer(ctx, app.Router, config.App.Port, logger)
}
