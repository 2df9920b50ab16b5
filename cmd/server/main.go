// Package main provides the outlierlens server entry point.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/outlierlens/outlierlens-go/internal/config"
	"github.com/outlierlens/outlierlens-go/internal/db"
	"github.com/outlierlens/outlierlens-go/internal/handler"
	"github.com/outlierlens/outlierlens-go/internal/middleware"
	"github.com/outlierlens/outlierlens-go/internal/narrate"
	"github.com/outlierlens/outlierlens-go/internal/provider/youtube"
	"github.com/outlierlens/outlierlens-go/internal/registry"
	"github.com/outlierlens/outlierlens-go/internal/repository"
	"github.com/outlierlens/outlierlens-go/internal/router"
	"github.com/outlierlens/outlierlens-go/internal/service"
	"github.com/outlierlens/outlierlens-go/internal/thumb"
	"github.com/outlierlens/outlierlens-go/internal/vision"
)

var version = "1.0.0"

const janitorInterval = 10 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port string

	rootCmd := &cobra.Command{
		Use:     "outlierlens-server",
		Short:   "Video search aggregation, outlier scoring, and thumbnail analysis API",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return serve(cfg)
		},
	}

	rootCmd.SetVersionTemplate("outlierlens-server version {{.Version}}\n")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")

	return rootCmd
}

func serve(cfg *config.Config) error {
	middleware.InitLogger(cfg.LogLevel, "outlierlens")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	handler.InitMetrics(pool)

	cacheRepo := repository.NewCacheRepo(pool)
	analysisRepo := repository.NewAnalysisRepo(pool)
	searchLogRepo := repository.NewSearchLogRepo(pool)

	hotCache := service.NewCacheService(cfg.RedisURL)
	defer hotCache.Close()

	reg := registry.New()
	ytClient := youtube.NewClient(cfg.YouTubeAPIKey)

	searchSvc := service.NewSearchService(cacheRepo, ytClient, reg, searchLogRepo, cfg.FanoutParallelism)
	analysisSvc := service.NewAnalysisService(
		analysisRepo,
		hotCache,
		thumb.NewFetcher(nil),
		vision.NewClient(cfg.VisionAPIKey),
		narrate.NewClient(cfg.OpenAIAPIKey),
	)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go service.NewJanitor(cacheRepo, janitorInterval).Start(janitorCtx)

	app := fiber.New(fiber.Config{
		AppName:      "OutlierLens API",
		ServerHeader: "OutlierLens",
	})

	router.Setup(app, &router.Handlers{
		Search:   handler.NewSearchHandler(searchSvc),
		Analysis: handler.NewAnalysisHandler(analysisSvc),
		Groups:   handler.NewGroupsHandler(reg),
		Stats:    handler.NewStatsHandler(cacheRepo, analysisRepo, searchLogRepo),
		Health:   handler.NewHealthHandler(pool, hotCache.Client(), version),
	}, cfg.CORSOrigins)

	log.Printf("outlierlens backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	return app.Listen(":" + cfg.Port)
}
