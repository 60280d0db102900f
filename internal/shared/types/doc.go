// Package types provides the wire types shared across the skill backend.
//
// Envelope Types:
//   - Event: Incoming turn (LaunchRequest, UserEvent, IntentRequest, SessionEndedRequest)
//   - Response: Outgoing turn with speech, directives and session attributes
//
// Display Types:
//   - Document, Template, Component: Declarative display document
//   - Directive, Command: Render and execute instructions
//
// Gateway Types:
//   - Outcome: Success value or safe fallback plus failure reason
//   - Listing: Display name to node id mapping
//   - TimerRequest, Timer: Timer creation payloads
//
// Example Usage:
//
//	resp := &types.Response{
//	    Version:  types.ResponseVersion,
//	    Response: types.ResponseBody{OutputSpeech: types.PlainText("Hello")},
//	}
package types
