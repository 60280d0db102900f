package turn

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/RecipeDeck/internal/domain/duration"
	"github.com/GriffinCanCode/RecipeDeck/internal/domain/session"
	"github.com/GriffinCanCode/RecipeDeck/internal/domain/view"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/id"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"go.uber.org/zap"
)

// Options configures a Dispatcher
type Options struct {
	RootFolderID  string
	DefaultLocale string
	Logger        *logging.Logger
	Metrics       *monitoring.Metrics
}

// Dispatcher turns one event plus its session into one response.
// It holds no per-session state and is safe for concurrent use.
type Dispatcher struct {
	content  ContentGateway
	timers   TimerGateway
	root     string
	locale   string
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	handlers map[Kind]handler
}

// turnContext is everything a handler sees for one turn
type turnContext struct {
	event *types.Event
	state session.State
	log   *logging.Logger
}

// handler returns the response and whether the turn completed without degrading
type handler func(ctx context.Context, tc *turnContext) (*types.Response, bool)

// NewDispatcher creates a dispatcher over the given gateways
func NewDispatcher(content ContentGateway, timers TimerGateway, opts Options) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = "en-US"
	}

	d := &Dispatcher{
		content: content,
		timers:  timers,
		root:    opts.RootFolderID,
		locale:  opts.DefaultLocale,
		logger:  opts.Logger.Component("dispatcher"),
		metrics: opts.Metrics,
	}
	d.handlers = map[Kind]handler{
		KindLaunch:       d.handleLaunch,
		KindSelect:       d.handleSelect,
		KindScrollDown:   d.scroll(1),
		KindScrollUp:     d.scroll(-1),
		KindSetTimer:     d.handleSetTimer,
		KindCancelTimer:  d.handleCancelTimer,
		KindFallback:     d.handleFallback,
		KindSessionEnded: d.handleSessionEnded,
		KindUnrecognized: d.handleUnrecognized,
	}
	return d
}

// Dispatch handles one turn. It always returns a valid response: handler
// panics are recovered into the unexpected-error reply.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *types.Event) (resp *types.Response) {
	start := time.Now()
	if ev == nil {
		ev = &types.Event{}
	}

	kind := Classify(ev.Request)
	tc := &turnContext{
		event: ev,
		state: session.FromAttributes(ev.Attributes()),
		log: d.logger.Turn(
			id.NewTurnID().String(),
			ev.Request.RequestID,
			tracing.TraceIDFromContext(ctx).String(),
		),
	}

	ok := false
	defer func() {
		if r := recover(); r != nil {
			tc.log.Error("turn panicked",
				zap.String("kind", kind.String()),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			if d.metrics != nil {
				d.metrics.IncTurnPanics()
			}
			resp = view.Speak(SpeechUnexpected, false, tc.state)
			ok = false
		}
		d.observe(tc, kind, ok, time.Since(start))
	}()

	resp, ok = d.handlers[kind](ctx, tc)
	return resp
}

func (d *Dispatcher) observe(tc *turnContext, kind Kind, ok bool, elapsed time.Duration) {
	outcome := monitoring.OutcomeOK
	if !ok {
		outcome = monitoring.OutcomeDegraded
	}
	if d.metrics != nil {
		d.metrics.RecordTurn(kind.String(), outcome, elapsed)
	}
	tc.log.Info("turn handled",
		zap.String("kind", kind.String()),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)
}

func (d *Dispatcher) handleLaunch(ctx context.Context, tc *turnContext) (*types.Response, bool) {
	if r, ok := tc.state.Recipe(); ok {
		return view.RenderRecipe(r, tc.state), true
	}

	folders := d.content.ListFolders(ctx, d.root)
	if !folders.Success {
		tc.log.Warn("category listing degraded", zap.String("reason", folders.Reason))
	}
	return view.RenderList(view.Categories, folders.Value, tc.state), folders.Success
}

func (d *Dispatcher) handleSelect(ctx context.Context, tc *turnContext) (*types.Response, bool) {
	nodeID, err := selectedID(tc.event.Request)
	if err != nil {
		tc.log.Warn("invalid selection", zap.Error(err))
		return view.Speak(SpeechBadSelection, false, tc.state), false
	}
	tc.log.Debug("selection", zap.String("node_id", nodeID))

	if isFolder := d.content.IsFolder(ctx, nodeID); isFolder.Value {
		files := d.content.ListFiles(ctx, nodeID)
		return view.RenderList(view.Items, files.Value, tc.state), files.Success
	}

	text := d.content.FetchText(ctx, nodeID)
	if !text.Success {
		return view.Speak(text.Value, false, tc.state), false
	}
	if text.Value == "" {
		return view.Speak(SpeechRecipeEmpty, false, tc.state), false
	}

	// the node id doubles as the display name; no name lookup is made on selection
	return view.RenderRecipe(session.Recipe{Name: nodeID, Content: text.Value}, tc.state), true
}

func (d *Dispatcher) scroll(direction int) handler {
	return func(_ context.Context, tc *turnContext) (*types.Response, bool) {
		return view.RenderScroll(direction, tc.state), true
	}
}

func (d *Dispatcher) handleSetTimer(ctx context.Context, tc *turnContext) (*types.Response, bool) {
	req := tc.event.Request
	expr := req.SlotValue(SlotDuration)
	seconds, err := timerSeconds(expr)
	if err != nil {
		tc.log.Warn("invalid timer duration", zap.String("duration", expr), zap.Error(err))
		return view.Speak(SpeechUnexpected, false, tc.state), false
	}

	endpoint, token := tc.event.Credentials()
	if endpoint == "" || token == "" {
		tc.log.Warn("timer request without api credentials")
		return view.Speak(SpeechUnexpected, false, tc.state), false
	}

	locale := req.Locale
	if locale == "" {
		locale = d.locale
	}

	created := d.timers.Create(ctx, endpoint, token, types.TimerRequest{
		Duration: expr,
		Label:    TimerLabel,
		Locale:   locale,
	})
	if !created.Success {
		tc.log.Error("timer creation failed", zap.String("reason", created.Reason))
		return view.Speak(SpeechTimerFailed, false, tc.state), false
	}

	spoken := duration.Describe(seconds)
	if r, ok := tc.state.Recipe(); ok {
		return view.WithSpeech(view.RenderRecipe(r, tc.state), fmt.Sprintf(speechTimerSetViewing, spoken)), true
	}
	return view.Speak(fmt.Sprintf(speechTimerSet, spoken), false, tc.state), true
}

func (d *Dispatcher) handleCancelTimer(ctx context.Context, tc *turnContext) (*types.Response, bool) {
	endpoint, token := tc.event.Credentials()
	if endpoint == "" || token == "" {
		tc.log.Warn("timer cancel without api credentials")
		return view.Speak(SpeechUnexpected, false, tc.state), false
	}

	canceled := d.timers.CancelAll(ctx, endpoint, token)
	if !canceled.Success {
		tc.log.Error("timer cancel failed", zap.String("reason", canceled.Reason))
		return view.Speak(SpeechCancelFailed, false, tc.state), false
	}

	if r, ok := tc.state.Recipe(); ok {
		return view.WithSpeech(view.RenderRecipe(r, tc.state), SpeechTimersCanceled), true
	}
	return view.Speak(SpeechTimersCanceled, false, tc.state), true
}

func (d *Dispatcher) handleFallback(_ context.Context, tc *turnContext) (*types.Response, bool) {
	return view.Silent(false, tc.state), true
}

func (d *Dispatcher) handleSessionEnded(_ context.Context, tc *turnContext) (*types.Response, bool) {
	tc.log.Debug("session ended", zap.String("reason", tc.event.Request.Reason))
	return view.Silent(true, tc.state), true
}

func (d *Dispatcher) handleUnrecognized(_ context.Context, tc *turnContext) (*types.Response, bool) {
	tc.log.Warn("unrecognized request",
		zap.String("type", tc.event.Request.Type),
		zap.String("intent", tc.event.Request.IntentName()),
	)
	return view.Speak(SpeechUnrecognized, true, tc.state), false
}
