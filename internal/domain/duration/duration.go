// Package duration parses the ordered hours/minutes/seconds duration
// expressions carried in timer slots, such as PT1H30M.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrFormat reports a duration outside the PT[nH][nM][nS] grammar
var ErrFormat = errors.New("invalid duration format")

var pattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Parse returns the total whole seconds of expr
func Parse(expr string) (int, error) {
	m := pattern.FindStringSubmatch(expr)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, expr)
	}
	if m[1] == "" && m[2] == "" && m[3] == "" {
		return 0, fmt.Errorf("%w: %q has no components", ErrFormat, expr)
	}

	var total int
	for i, unit := range []int{3600, 60, 1} {
		part := m[i+1]
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrFormat, expr, err)
		}
		if n > (math.MaxInt-total)/unit {
			return 0, fmt.Errorf("%w: %q is out of range", ErrFormat, expr)
		}
		total += n * unit
	}
	return total, nil
}

// Describe renders seconds as speech, e.g. "1 hour 30 minutes"
func Describe(seconds int) string {
	if seconds <= 0 {
		return "0 seconds"
	}

	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	var parts []string
	for _, p := range []struct {
		n    int
		unit string
	}{{h, "hour"}, {m, "minute"}, {s, "second"}} {
		switch {
		case p.n == 1:
			parts = append(parts, "1 "+p.unit)
		case p.n > 1:
			parts = append(parts, strconv.Itoa(p.n)+" "+p.unit+"s")
		}
	}
	return strings.Join(parts, " ")
}
