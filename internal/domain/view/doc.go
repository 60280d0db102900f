// Package view builds the response envelopes and display documents for each
// screen: category and recipe listings, the recipe itself, scroll commands
// and speech-only replies.
//
// Every builder takes the turn's outgoing session and echoes it as
// sessionAttributes, so a retained recipe survives turns that do not show it.
package view
