// Package server wires configuration, gateways, the turn dispatcher and the
// gin router into a runnable HTTP service.
package server
