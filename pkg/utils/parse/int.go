// ABOUTME: Lenient parsing of configuration values
// ABOUTME: Every helper falls back to a default instead of failing

package parse

import (
	"strconv"
	"strings"
	"time"
)

// IntOr parses s as an int, returning def when s is empty or malformed
func IntOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// Int64Or parses s as an int64, returning def when s is empty or malformed
func Int64Or(s string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// BoolOr parses s with strconv.ParseBool, returning def when s is empty or malformed
func BoolOr(s string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// DurationOr parses a Go duration ("800ms", "24h"). A bare integer is read
// as milliseconds.
func DurationOr(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
