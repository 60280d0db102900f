// Package session models the state a skill session carries between turns.
//
// The platform hands the attribute map back on every request and the server
// keeps nothing in process memory, so the retained recipe survives only by
// being echoed in each response. Concurrent turns for one session resolve
// last-write-wins.
package session
