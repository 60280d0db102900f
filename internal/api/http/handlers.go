package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dispatcher produces the response for one turn
type Dispatcher interface {
	Dispatch(ctx context.Context, ev *types.Event) *types.Response
}

// Handlers contains the HTTP handlers
type Handlers struct {
	dispatcher Dispatcher
	breakers   []*resilience.Breaker
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// NewHandlers creates a new handlers instance. breakers are reported by Health.
func NewHandlers(dispatcher Dispatcher, metrics *monitoring.Metrics, logger *logging.Logger, breakers ...*resilience.Breaker) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		dispatcher: dispatcher,
		breakers:   breakers,
		metrics:    metrics,
		logger:     logger.Component("http"),
	}
}

// Skill handles one turn posted by the voice platform
func (h *Handlers) Skill(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var ev types.Event
	if err := sonic.Unmarshal(body, &ev); err != nil {
		h.logger.Warn("malformed event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event: " + err.Error()})
		return
	}

	h.logger.Debug("event received",
		zap.String("type", ev.Request.Type),
		zap.String("intent", ev.Request.IntentName()),
		zap.String("request_id", ev.Request.RequestID),
	)

	c.JSON(http.StatusOK, h.dispatcher.Dispatch(c.Request.Context(), &ev))
}

// Health returns service health status
func (h *Handlers) Health(c *gin.Context) {
	breakers := make(gin.H, len(h.breakers))
	for _, b := range h.breakers {
		breakers[b.Name()] = b.State().String()
	}

	resp := gin.H{
		"status":   "healthy",
		"breakers": breakers,
	}
	if h.metrics != nil {
		resp["turns"] = h.metrics.Snapshot()
		resp["uptime_seconds"] = int64(h.metrics.UptimeDuration().Seconds())
	}
	c.JSON(http.StatusOK, resp)
}

// Metrics serves Prometheus metrics
func (h *Handlers) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
