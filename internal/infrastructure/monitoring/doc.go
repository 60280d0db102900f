/*
Package monitoring provides Prometheus metrics for the skill server.

Each Metrics value owns a private registry, so tests and the CLI can build
as many servers as they like without duplicate registration panics.

# Metrics

  - HTTP requests (count, latency, sizes) keyed by route template
  - Turns by kind and outcome, turn latency, recovered panics
  - Outbound gateway calls and latency
  - Circuit breaker state per remote
  - Uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "drive", "list_folders")
	// ... call the remote ...
	timer.Stop(err == nil)
*/
package monitoring
