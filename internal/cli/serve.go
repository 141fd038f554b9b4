package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evcraddock/smart-feedback/internal/config"
	"github.com/evcraddock/smart-feedback/internal/db"
	"github.com/evcraddock/smart-feedback/internal/logging"
	"github.com/evcraddock/smart-feedback/internal/sentiment"
	"github.com/evcraddock/smart-feedback/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API server. Configuration is read from SF_* environment variables, optionally seeded from a .env file.\n\n" + config.Usage(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, envFile, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: SF_PORT or 8080)")
	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load before reading the environment")

	return cmd
}

func runServe(ctx context.Context, envFile string, port int) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if port > 0 {
		cfg.Port = port
	}
	if flagDB != "" {
		cfg.DBDriver = db.DriverSQLite
		cfg.DBDSN = flagDB
	}

	logger, err := logging.New(cfg.DevMode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
	}()
	logger.Info("database ready", zap.String("driver", cfg.DBDriver))

	classifier := sentiment.NewClassifier(cfg.Gateway(), logger)

	srv := web.NewServer(database, classifier, web.Options{
		Keys:    cfg.Keys(),
		Origins: cfg.Origins(),
		Logger:  logger,
	})

	return srv.ListenAndServe(ctx, cfg.Port)
}
