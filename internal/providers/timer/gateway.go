// Package timer creates and cancels device timers through the voice
// platform's alerts API, authenticated with the per-turn access token.
package timer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RecipeDeck/internal/providers/http/client"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const timersPath = "/v1/alerts/timers"

// ErrEndpointNotAllowed is returned when a turn names an apiEndpoint outside the allowlist
var ErrEndpointNotAllowed = errors.New("timer endpoint host is not allowed")

// Payload is the create-timer request body
type Payload struct {
	Duration           string             `json:"duration"`
	Label              string             `json:"label"`
	CreationBehavior   CreationBehavior   `json:"creationBehavior"`
	TriggeringBehavior TriggeringBehavior `json:"triggeringBehavior"`
}

type CreationBehavior struct {
	DisplayExperience DisplayExperience `json:"displayExperience"`
}

type DisplayExperience struct {
	Visibility string `json:"visibility"`
}

type TriggeringBehavior struct {
	Operation          Operation          `json:"operation"`
	NotificationConfig NotificationConfig `json:"notificationConfig"`
}

type Operation struct {
	Type           string         `json:"type"`
	TextToAnnounce []Announcement `json:"textToAnnounce"`
}

type Announcement struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

type NotificationConfig struct {
	PlayAudible bool `json:"playAudible"`
}

// NewPayload builds a visible timer that announces its label when done
func NewPayload(req types.TimerRequest) Payload {
	return Payload{
		Duration: req.Duration,
		Label:    req.Label,
		CreationBehavior: CreationBehavior{
			DisplayExperience: DisplayExperience{Visibility: "VISIBLE"},
		},
		TriggeringBehavior: TriggeringBehavior{
			Operation: Operation{
				Type: "ANNOUNCE",
				TextToAnnounce: []Announcement{{
					Locale: req.Locale,
					Text:   fmt.Sprintf("Your %s timer is complete.", req.Label),
				}},
			},
			NotificationConfig: NotificationConfig{PlayAudible: true},
		},
	}
}

// Gateway talks to the timers API. The endpoint and token arrive with each
// turn, so the client carries no base URL or credentials.
type Gateway struct {
	client  *client.Client
	allowed map[string]struct{}
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewGateway creates a timer gateway over c
func NewGateway(c *client.Client, logger *logging.Logger, metrics *monitoring.Metrics) *Gateway {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gateway{
		client:  c,
		logger:  logger.Component("timer"),
		metrics: metrics,
	}
}

// WithAllowedHosts restricts the endpoints the access token is sent to.
// Without it every host is accepted.
func (g *Gateway) WithAllowedHosts(hosts ...string) *Gateway {
	g.allowed = make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			g.allowed[h] = struct{}{}
		}
	}
	return g
}

func (g *Gateway) checkEndpoint(endpoint string) error {
	if len(g.allowed) == 0 {
		return nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEndpointNotAllowed, err)
	}
	if _, ok := g.allowed[strings.ToLower(u.Hostname())]; !ok {
		return fmt.Errorf("%w: %q", ErrEndpointNotAllowed, u.Hostname())
	}
	return nil
}

// Create creates a timer. Failures are returned as a degraded outcome.
func (g *Gateway) Create(ctx context.Context, endpoint, token string, req types.TimerRequest) types.Outcome[*types.Timer] {
	if err := g.checkEndpoint(endpoint); err != nil {
		g.logger.Warn("timer create refused", zap.Error(err))
		return types.Failed[*types.Timer](nil, err.Error())
	}
	timer := monitoring.NewTimer(g.metrics, "timer", "create")

	var created types.Timer
	_, err := g.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetAuthToken(token).
			SetBody(NewPayload(req)).
			SetResult(&created).
			Post(timersURL(endpoint))
	})
	timer.Stop(err == nil)
	if err != nil {
		g.logger.Error("timer create failed",
			zap.String("duration", req.Duration),
			zap.Error(err),
			zap.ByteString("body", statusBody(err)),
		)
		return types.Failed[*types.Timer](nil, err.Error())
	}

	g.logger.Info("timer created",
		zap.String("timer_id", created.ID),
		zap.String("duration", req.Duration),
	)
	return types.Succeeded(&created)
}

// CancelAll cancels every timer on the device
func (g *Gateway) CancelAll(ctx context.Context, endpoint, token string) types.Outcome[bool] {
	if err := g.checkEndpoint(endpoint); err != nil {
		g.logger.Warn("timer cancel refused", zap.Error(err))
		return types.Failed(false, err.Error())
	}
	timer := monitoring.NewTimer(g.metrics, "timer", "cancel_all")

	_, err := g.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetAuthToken(token).Delete(timersURL(endpoint))
	})
	timer.Stop(err == nil)
	if err != nil {
		g.logger.Error("timer cancel failed", zap.Error(err), zap.ByteString("body", statusBody(err)))
		return types.Failed(false, err.Error())
	}
	return types.Succeeded(true)
}

func timersURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + timersPath
}

func statusBody(err error) []byte {
	if se, ok := client.AsStatus(err); ok {
		return se.Body
	}
	return nil
}
