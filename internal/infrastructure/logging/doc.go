// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Child loggers carry the component name and the identifiers of the turn
// being handled (turn_id, request_id, trace_id). Access tokens are never
// logged.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Component("drive").Error("listing failed", zap.Error(err))
package logging
