package booking

import (
	"fmt"
	"regexp"
	"strings"

	"rapstation/models"
)

var intervalDelimiter = regexp.MustCompile(`\s*-\s*`)

// IntervalError explains why a stored interval could not be resolved.
type IntervalError struct {
	Raw    string
	Reason string
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("interval %q: %s", e.Raw, e.Reason)
}

// IntervalResult is a resolved half-open [StartIndex, EndIndex) range on the grid.
type IntervalResult struct {
	StartIndex int
	EndIndex   int
}

// Empty reports whether the range covers no hour.
func (r IntervalResult) Empty() bool {
	return r.EndIndex <= r.StartIndex
}

// ParseInterval resolves "HH:00 - HH:00" against hourLabels. Whitespace around the
// delimiter is optional. An end label of 24:00 that is not in hourLabels resolves to
// len(hourLabels). Inverted ranges parse successfully and are reported by Empty.
func ParseInterval(raw string, hourLabels []string) (IntervalResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == models.IntervalUnselected {
		return IntervalResult{}, &IntervalError{Raw: raw, Reason: "no interval selected"}
	}
	parts := intervalDelimiter.Split(trimmed, -1)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return IntervalResult{}, &IntervalError{Raw: raw, Reason: "expected two labels joined by '-'"}
	}
	start := labelIndex(parts[0], hourLabels)
	if start < 0 {
		return IntervalResult{}, &IntervalError{Raw: raw, Reason: "unknown start label " + parts[0]}
	}
	end := labelIndex(parts[1], hourLabels)
	if end < 0 && parts[1] == models.EndOfDayLabel {
		end = len(hourLabels)
	}
	if end < 0 {
		return IntervalResult{}, &IntervalError{Raw: raw, Reason: "unknown end label " + parts[1]}
	}
	return IntervalResult{StartIndex: start, EndIndex: end}, nil
}

// FormatInterval renders the persisted form "<start> - <end>".
func FormatInterval(startLabel, endLabel string) string {
	return startLabel + " - " + endLabel
}

// endLabelFor returns the label at idx, or the end-of-day sentinel past the last slot.
func endLabelFor(idx int, hourLabels []string) string {
	if idx >= 0 && idx < len(hourLabels) {
		return hourLabels[idx]
	}
	return models.EndOfDayLabel
}

func labelIndex(label string, hourLabels []string) int {
	label = strings.TrimSpace(label)
	for i, l := range hourLabels {
		if l == label {
			return i
		}
	}
	return -1
}
