package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pageza/tomato/backend/config"
	"github.com/pageza/tomato/backend/internal/api"
	"github.com/pageza/tomato/backend/internal/database"
	"github.com/pageza/tomato/backend/internal/logging"
	"github.com/pageza/tomato/backend/internal/metrics"
	"github.com/pageza/tomato/backend/internal/router"
	"github.com/pageza/tomato/backend/internal/server"
	"github.com/pageza/tomato/backend/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "tomato-api",
		Short: "Tomato recipe, review and ordering API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(logLevel)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tomato-api version %s\n", api.Version)
		},
	})
	return cmd
}

func run(logLevel string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.WithField("environment", config.GetEnvironment()).Info("Starting Tomato API")

	db, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	images, err := newImageStore(cfg, log)
	if err != nil {
		return err
	}

	m := metrics.New()
	menu, err := service.NewMenuService()
	if err != nil {
		return err
	}

	deps := router.Dependencies{
		Config:  cfg,
		Log:     log,
		Metrics: m,
		DB:      db,
		Recipes: service.NewRecipeService(db, images, log, m),
		Reviews: service.NewReviewService(db, log, m),
		Menu:    menu,
	}

	rdb, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, order routes disabled")
	} else {
		defer rdb.Close()
		deps.Redis = rdb
		deps.Orders = service.NewOrderService(rdb, menu, cfg.OrderTTL, log, m)
	}

	srv := server.NewServer(cfg.Addr(), router.SetupRouter(deps), log)
	return srv.Start()
}

func newImageStore(cfg *config.Config, log *logrus.Logger) (service.ImageStore, error) {
	if cfg.ImageStorage != config.StorageS3 {
		return service.NewLocalImageStore(cfg.UploadDir, cfg.UploadsPrefix, log)
	}

	ctx := context.Background()
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := s3cfg.SetupBucketPolicy(ctx); err != nil {
		log.WithError(err).Warn("Failed to apply public read policy to image bucket")
	}
	return service.NewS3ImageStore(s3cfg, log), nil
}
