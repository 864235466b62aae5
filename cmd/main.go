package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"palette_api/pkg/api"
	"palette_api/pkg/clients/openai"
	"palette_api/pkg/config"
	"palette_api/pkg/logging"
	"palette_api/pkg/metrics"
	"palette_api/pkg/middleware"
	"palette_api/pkg/ratelimit"
	"palette_api/pkg/repository/usage"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config failed")
	}

	reg := metrics.NewRegistry()

	server := echo.New()
	server.HideBanner = true
	server.Use(echomw.Recover())
	server.Use(middleware.RequestLogger(reg))

	// The model client exists only when the credential is configured;
	// otherwise /diagnose answers 503 until restart.
	var model api.DiagnosisModel
	if cfg.OpenAI.APIKey != "" {
		model = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens)
	} else {
		log.Warn().Msg("OPENAI_API_KEY is empty, diagnosis endpoint will answer 503")
	}

	limiter := ratelimit.New(ratelimit.Options{
		MaxPerWindow:  cfg.RateLimit.Max,
		Window:        time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		SweepInterval: time.Duration(cfg.RateLimit.SweepMinutes) * time.Minute,
	})
	defer limiter.Close()

	var repo usage.Repository
	var mongoRepo *usage.MongoRepository
	if cfg.Mongo.URI != "" {
		mongoRepo, err = usage.NewMongoRepository(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, reg)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo init failed")
		}
		repo = mongoRepo
		log.Info().Str("database", cfg.Mongo.Database).Msg("usage persistence enabled")
	}

	handlers := api.NewHandlers(model, limiter, repo, reg, cfg)
	handlers.Register(server)
	server.GET("/metrics", reg.EchoHandlerText)
	server.GET("/metrics.json", reg.EchoHandlerJSON)
	server.GET("/health", func(c echo.Context) error {
		return c.NoContent(200)
	})

	go func() {
		log.Info().Str("address", cfg.Address).Str("mode", cfg.Mode).Bool("enabled", cfg.Enabled).Msg("server starting")
		if err := server.Start(cfg.Address); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if mongoRepo != nil {
		if err := mongoRepo.Close(ctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}
}
