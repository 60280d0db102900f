// Package integration drives the full HTTP stack against fake Drive and
// device timer servers.
package integration
