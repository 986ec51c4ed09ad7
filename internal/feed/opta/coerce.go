package opta

import (
	"strconv"
	"strings"
)

// Field coercion never fails: a value that does not parse falls back to the
// documented default so one bad attribute does not sink a document.

func safeInt(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

func safeFloat(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}
