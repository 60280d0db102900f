package types

// Outcome is the result of a remote call. On failure Value holds the safe
// fallback the caller degrades to and Reason says why the call failed.
type Outcome[T any] struct {
	Success bool
	Value   T
	Reason  string
}

// Succeeded wraps a successful value
func Succeeded[T any](value T) Outcome[T] {
	return Outcome[T]{Success: true, Value: value}
}

// Failed wraps a fallback value with the failure reason
func Failed[T any](fallback T, reason string) Outcome[T] {
	return Outcome[T]{Success: false, Value: fallback, Reason: reason}
}

// Listing maps display names to node ids
type Listing map[string]string

// TimerRequest describes a timer to create
type TimerRequest struct {
	Duration string
	Label    string
	Locale   string
}

// Timer is the remote representation of a created timer
type Timer struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Duration    string `json:"duration"`
	TriggerTime string `json:"triggerTime,omitempty"`
	CreatedTime string `json:"createdTime,omitempty"`
}
