package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Minhaj401/invoice-generator-api/internal/config"
	"github.com/Minhaj401/invoice-generator-api/internal/domain/invoice"
	"github.com/Minhaj401/invoice-generator-api/internal/domain/parser"
	"github.com/Minhaj401/invoice-generator-api/internal/domain/payment"
	"github.com/Minhaj401/invoice-generator-api/internal/domain/renderer"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/extraction"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/logger"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/observability"
	"github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver"
	"github.com/Minhaj401/invoice-generator-api/internal/utils/retry"
)

// Application holds the wired dependencies for the invoice service.
type Application struct {
	cfg    *config.Config
	log    zerolog.Logger
	server *httpserver.HttpServer
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.GetLogger()
		fallbackLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fallbackLog := logger.GetLogger()
		fallbackLog.Fatal().Err(err).Msg("failed to initialize logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	app := newApplication(cfg, log)

	log.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("model", cfg.ExtractionModel).
		Msg("starting invoice service")

	if err := app.server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server terminated")
	}

	log.Info().Msg("invoice service stopped")
}

func newApplication(cfg *config.Config, log zerolog.Logger) *Application {
	extractionClient := extraction.NewClient(cfg, log)

	retryPolicy := retry.Policy{
		MaxRetries: cfg.ExtractionMaxRetries,
		Delay:      cfg.ExtractionRetryDelay,
	}
	parserService := parser.NewService(extractionClient, retryPolicy, log)

	computer := invoice.NewComputer(
		decimal.NewFromFloat(cfg.TaxRate),
		cfg.PaymentDueDays,
		cfg.Currency,
	)
	paymentGenerator := payment.NewGenerator(cfg.Currency)
	pdfRenderer := renderer.NewPDFRenderer()

	defaults := invoice.BusinessProfile{
		Name:    cfg.BusinessName,
		Address: cfg.BusinessAddress,
		Phone:   cfg.BusinessPhone,
		Email:   cfg.BusinessEmail,
		TaxID:   cfg.BusinessGST,
	}
	invoiceService := invoice.NewService(defaults, parserService, computer, paymentGenerator, pdfRenderer, log)

	server := httpserver.New(cfg, log, invoiceService)

	return &Application{
		cfg:    cfg,
		log:    log,
		server: server,
	}
}

// loadEnvFiles loads .env files when present, real env vars take precedence.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}
