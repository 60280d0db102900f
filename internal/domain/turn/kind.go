package turn

import "github.com/GriffinCanCode/RecipeDeck/internal/shared/types"

// Kind is the closed set of turns the dispatcher handles
type Kind int

const (
	KindUnrecognized Kind = iota
	KindLaunch
	KindSelect
	KindScrollDown
	KindScrollUp
	KindSetTimer
	KindCancelTimer
	KindFallback
	KindSessionEnded
)

var kindNames = map[Kind]string{
	KindUnrecognized: "unrecognized",
	KindLaunch:       "launch",
	KindSelect:       "select",
	KindScrollDown:   "scroll_down",
	KindScrollUp:     "scroll_up",
	KindSetTimer:     "set_timer",
	KindCancelTimer:  "cancel_timer",
	KindFallback:     "fallback",
	KindSessionEnded: "session_ended",
}

// String returns the metric label for the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnrecognized]
}

var intentKinds = map[string]Kind{
	types.IntentScrollDown:  KindScrollDown,
	types.IntentScrollUp:    KindScrollUp,
	types.IntentSetTimer:    KindSetTimer,
	types.IntentCancelTimer: KindCancelTimer,
	types.IntentFallback:    KindFallback,
}

// Classify maps a request to its turn kind
func Classify(req types.Request) Kind {
	switch req.Type {
	case types.RequestLaunch:
		return KindLaunch
	case types.RequestUserEvent:
		return KindSelect
	case types.RequestSessionEnded:
		return KindSessionEnded
	case types.RequestIntent:
		if k, ok := intentKinds[req.IntentName()]; ok {
			return k
		}
	}
	return KindUnrecognized
}
