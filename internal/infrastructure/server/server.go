package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/RecipeDeck/internal/api/http"
	"github.com/GriffinCanCode/RecipeDeck/internal/api/middleware"
	"github.com/GriffinCanCode/RecipeDeck/internal/domain/turn"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/config"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/RecipeDeck/internal/providers/drive"
	httpclient "github.com/GriffinCanCode/RecipeDeck/internal/providers/http/client"
	"github.com/GriffinCanCode/RecipeDeck/internal/providers/timer"
)

// MaxEventSize caps inbound event bodies
const MaxEventSize = 1 << 20

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	handler    http.Handler
	dispatcher *turn.Dispatcher
	breakers   []*resilience.Breaker
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	return NewServerWithLogger(cfg, logger)
}

// NewServerWithLogger creates a server that logs through logger
func NewServerWithLogger(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Initializing RecipeDeck server",
		zap.String("addr", cfg.Addr()),
		zap.String("skill_path", cfg.Server.SkillPath),
		zap.String("drive_base_url", cfg.Drive.BaseURL),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("recipedeck", logger.Logger)

	dispatcher, breakers := NewDispatcher(cfg, logger, metrics)

	if !cfg.Logging.Development && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.GlobalRateLimit(rl))
	}
	router.Use(middleware.MaxBodySize(MaxEventSize))

	handlers := apihttp.NewHandlers(dispatcher, metrics, logger, breakers...)

	router.POST(cfg.Server.SkillPath, handlers.Skill)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", handlers.Metrics)

	logger.Info("Server initialized successfully")

	return &Server{
		router:     router,
		handler:    gzhttp.GzipHandler(router),
		dispatcher: dispatcher,
		breakers:   breakers,
		tracer:     tracer,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}, nil
}

// NewDispatcher wires the Drive and timer gateways into a turn dispatcher.
// metrics may be nil. The returned breakers guard the two outbound clients.
func NewDispatcher(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*turn.Dispatcher, []*resilience.Breaker) {
	onStateChange := func(name string, from, to resilience.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		if metrics != nil {
			metrics.SetBreakerState(name, int(to))
		}
	}

	driveClient := httpclient.NewClient(httpclient.Options{
		Name:            "drive",
		BaseURL:         cfg.Drive.BaseURL,
		Timeout:         cfg.HTTPClient.Timeout,
		RequestsPerSec:  cfg.HTTPClient.RequestsPerSec,
		BreakerFailures: cfg.HTTPClient.BreakerFailures,
		OnStateChange:   onStateChange,
	})
	// Timer requests go to the per-turn platform endpoint, so no base URL.
	timerClient := httpclient.NewClient(httpclient.Options{
		Name:            "timers",
		Timeout:         cfg.HTTPClient.Timeout,
		RequestsPerSec:  cfg.HTTPClient.RequestsPerSec,
		BreakerFailures: cfg.HTTPClient.BreakerFailures,
		OnStateChange:   onStateChange,
	})
	if metrics != nil {
		metrics.SetBreakerState(driveClient.Breaker.Name(), int(driveClient.BreakerState()))
		metrics.SetBreakerState(timerClient.Breaker.Name(), int(timerClient.BreakerState()))
	}

	content := drive.NewGateway(driveClient, drive.Options{
		APIKey:  cfg.Drive.APIKey,
		Logger:  logger,
		Metrics: metrics,
	})
	timers := timer.NewGateway(timerClient, logger, metrics).WithAllowedHosts(cfg.Timers.AllowedHosts...)

	dispatcher := turn.NewDispatcher(content, timers, turn.Options{
		RootFolderID:  cfg.Drive.RootFolderID,
		DefaultLocale: cfg.Timers.Locale,
		Logger:        logger,
		Metrics:       metrics,
	})
	return dispatcher, []*resilience.Breaker{driveClient.Breaker, timerClient.Breaker}
}

// Handler returns the router behind response compression, for use with
// httptest or a custom listener
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Dispatcher returns the turn dispatcher behind the skill endpoint
func (s *Server) Dispatcher() *turn.Dispatcher {
	return s.dispatcher
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close releases background resources. Safe to call more than once.
func (s *Server) Close() error {
	s.tracer.Close()
	// Sync fails on stderr/stdout on some platforms; nothing to recover.
	_ = s.logger.Sync()
	return nil
}
