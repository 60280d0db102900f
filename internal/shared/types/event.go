package types

import "encoding/json"

// Request types delivered by the voice platform
const (
	RequestLaunch       = "LaunchRequest"
	RequestIntent       = "IntentRequest"
	RequestUserEvent    = "Alexa.Presentation.APL.UserEvent"
	RequestSessionEnded = "SessionEndedRequest"
)

// Intent names the skill understands
const (
	IntentScrollDown  = "ScrollDownIntent"
	IntentScrollUp    = "ScrollUpIntent"
	IntentSetTimer    = "SetTimerIntent"
	IntentCancelTimer = "CancelTimerIntent"
	IntentFallback    = "AMAZON.FallbackIntent"
)

// Event is the request envelope for a single turn
type Event struct {
	Version string        `json:"version"`
	Session *EventSession `json:"session,omitempty"`
	Context *EventContext `json:"context,omitempty"`
	Request Request       `json:"request"`
}

// EventSession carries the opaque attributes echoed back from the previous turn
type EventSession struct {
	New        bool                   `json:"new"`
	SessionID  string                 `json:"sessionId"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// EventContext holds device and platform information
type EventContext struct {
	System SystemContext `json:"System"`
}

// SystemContext exposes the platform API endpoint and the per-turn access token
type SystemContext struct {
	APIEndpoint    string `json:"apiEndpoint"`
	APIAccessToken string `json:"apiAccessToken"`
}

// Request is the discriminated part of the event
type Request struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Locale    string          `json:"locale,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Intent    *Intent         `json:"intent,omitempty"`
	Token     string          `json:"token,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// Intent is a resolved user utterance
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is a single intent parameter
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// SlotValue returns the value of the named slot, or "" when absent
func (r Request) SlotValue(name string) string {
	if r.Intent == nil {
		return ""
	}
	return r.Intent.Slots[name].Value
}

// IntentName returns the intent name, or "" for non-intent requests
func (r Request) IntentName() string {
	if r.Intent == nil {
		return ""
	}
	return r.Intent.Name
}

// Attributes returns the incoming session attributes, nil when there are none
func (e *Event) Attributes() map[string]interface{} {
	if e.Session == nil {
		return nil
	}
	return e.Session.Attributes
}

// Credentials returns the platform endpoint and access token for outbound calls
func (e *Event) Credentials() (endpoint, token string) {
	if e.Context == nil {
		return "", ""
	}
	return e.Context.System.APIEndpoint, e.Context.System.APIAccessToken
}
