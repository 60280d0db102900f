/*
Package resilience provides the circuit breaker that guards calls to the
remote recipe store and the timer API.

A breaker fails calls fast while a remote is known to be down so a turn
degrades immediately instead of waiting for a transport timeout. It never
retries.

# Usage

	breaker := resilience.New("drive", resilience.Settings{
		Timeout:     30 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailures(10),
	})

	listing, err := resilience.Do(breaker, func() (types.Listing, error) {
		return fetch(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                          Open
*/
package resilience
