// Command recipedeck serves the recipe voice skill.
//
// Usage:
//
//	# Serve the skill endpoint, /health and /metrics
//	DRIVE_API_KEY=... DRIVE_ROOT_FOLDER_ID=... recipedeck serve --port 8000
//
//	# Replay one turn from a file, carrying session attributes from another
//	recipedeck invoke --event launch.yaml --session session.json
//
// Configuration comes from the environment (see internal/infrastructure/config);
// flags override individual values.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
