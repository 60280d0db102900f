/*
Package turn is the skill's decision core: it classifies an incoming event
and produces exactly one response envelope for it.

	Launch        retained recipe ? recipe : root categories
	Select        folder ? its recipes : recipe text
	Scroll        scroll the recipe view by 0.75 of a screen
	SetTimer      create a timer, then keep the recipe on screen
	CancelTimer   cancel all timers, then keep the recipe on screen
	Fallback      silent, session stays open
	SessionEnded  silent, session closes
	anything else apology, session closes

The dispatcher never returns an error. Remote failures arrive as degraded
gateway outcomes, validation failures become spoken apologies, and panics are
recovered into the unexpected-error reply.
*/
package turn
