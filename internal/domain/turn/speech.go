package turn

// Spoken replies
const (
	SpeechBadSelection    = "Sorry, I couldn't process your selection."
	SpeechRecipeEmpty     = "Sorry, I couldn't load this recipe."
	SpeechTimerFailed     = "There was an issue setting the timer. Please try again."
	SpeechCancelFailed    = "There was an issue canceling your timers."
	SpeechTimersCanceled  = "All timers have been canceled."
	SpeechUnexpected      = "An unexpected error occurred. Please try again later."
	SpeechUnrecognized    = "Sorry, I couldn't process your request. Please try again."
	speechTimerSet        = "Timer set for %s."
	speechTimerSetViewing = "Timer set for %s. You can continue viewing your recipe."
)

// TimerLabel is the fixed label of timers created from the skill
const TimerLabel = "Recipe Timer"

// SlotDuration is the SetTimerIntent slot carrying the duration expression
const SlotDuration = "duration"
