// Package http exposes the skill over HTTP.
//
// Routes:
//   - POST {skill path}: one turn; the body is the platform event, the reply the response envelope
//   - GET /health: liveness plus circuit breaker states
//   - GET /metrics: Prometheus exposition
//
// A well-formed event always gets 200 with a valid envelope. Only bodies
// that cannot be decoded are rejected with 400.
package http
