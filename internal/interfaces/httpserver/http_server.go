package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Minhaj401/invoice-generator-api/internal/config"
	"github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver/handlers"
	"github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver/middlewares"
	v1 "github.com/Minhaj401/invoice-generator-api/internal/interfaces/httpserver/routes/v1"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the HTTP server with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, invoiceService handlers.InvoiceService) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.TracingMiddleware(cfg.ServiceName),
		middlewares.LoggingMiddleware(log),
		middlewares.MetricsMiddleware(),
	)

	handlerProvider := handlers.NewProvider(cfg, invoiceService, log)
	routeProvider := v1.NewRoutes(handlerProvider)
	registerCoreRoutes(engine, cfg, routeProvider)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *HttpServer) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("invoice-api HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, routes *v1.Routes) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": cfg.ServiceName, "status": "ok"})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Register(engine.Group("/"))
}
