package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"printer-service/internal/api"
	"printer-service/internal/config"
	"printer-service/internal/printing"
	"printer-service/internal/repository"
	"printer-service/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("Error loading configuration")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Error creating data directory")
	}

	counter := repository.NewFileCounterRepository(cfg.CounterFile)
	if err := counter.Initialize(); err != nil {
		logger.Fatal().Err(err).Msg("Error initializing order counter")
	}
	salesLog := repository.NewFileSalesLogRepository(cfg.DataDir)
	device := printing.NewUSBDevice(cfg.PrinterDevice)

	printService := service.NewPrintService(counter, salesLog, device, cfg.Allowlist())
	reportService := service.NewReportService(salesLog, device)
	handler := api.NewPrintHandler(counter, printService, reportService)

	e := echo.New()
	e.Validator = api.NewRequestValidator()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     cfg.RateLimit * 2,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.Origins()}))
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	handler.RegisterRoutes(e)

	logger.Info().Str("address", cfg.Address).Str("printer", cfg.PrinterDevice).Msg("Printer server running")
	e.Logger.Fatal(e.Start(cfg.Address))
}
