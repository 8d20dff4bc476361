package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError signals a malformed "HH:MM" time string.
type FormatError struct {
	Value string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("invalid time %q, expected HH:MM", e.Value)
}

// ToMinutes parses an "HH:MM" string into minutes from midnight.
// Hours must be 00-23 and minutes 00-59.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, FormatError{Value: hhmm}
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, FormatError{Value: hhmm}
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, FormatError{Value: hhmm}
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, FormatError{Value: hhmm}
	}
	return hours*60 + minutes, nil
}

// ToHHMM renders minutes from midnight as a zero-padded "HH:MM" string.
// The caller must supply 0 <= minutes < 1440 for sane output.
func ToHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
