package turn

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/RecipeDeck/internal/domain/duration"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
)

var (
	errNoArguments  = errors.New("selection carries no arguments")
	errBadArgument  = errors.New("selection argument is not a node id")
	errZeroDuration = errors.New("timer duration is not positive")
	errNoDuration   = errors.New("duration slot is missing")
)

// selectedID returns the node id carried as the first event argument
func selectedID(req types.Request) (string, error) {
	if len(req.Arguments) == 0 {
		return "", errNoArguments
	}

	var args []interface{}
	if err := json.Unmarshal(req.Arguments, &args); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if len(args) == 0 {
		return "", errNoArguments
	}

	nodeID, ok := args[0].(string)
	if !ok || nodeID == "" {
		return "", errBadArgument
	}
	return nodeID, nil
}

// timerSeconds validates a duration slot value
func timerSeconds(expr string) (int, error) {
	if expr == "" {
		return 0, errNoDuration
	}
	seconds, err := duration.Parse(expr)
	if err != nil {
		return 0, err
	}
	if seconds <= 0 {
		return 0, errZeroDuration
	}
	return seconds, nil
}
