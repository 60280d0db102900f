// Package middleware provides the gin middleware in front of the skill
// endpoint: CORS for browser simulators, a global token-bucket rate limit
// and a request body cap.
package middleware
