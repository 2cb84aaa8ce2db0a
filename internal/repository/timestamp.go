package repository

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the canonical serialized form of todo timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var textLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// NormalizeTimestamp converts any timestamp shape a store may hand back
// into TimestampLayout in UTC. Integers are Unix milliseconds.
func NormalizeTimestamp(v any) (string, error) {
	switch ts := v.(type) {
	case time.Time:
		return format(ts), nil
	case *time.Time:
		if ts == nil {
			return "", fmt.Errorf("nil timestamp")
		}
		return format(*ts), nil
	case string:
		return normalizeText(ts)
	case []byte:
		return normalizeText(string(ts))
	case int64:
		return format(time.UnixMilli(ts)), nil
	case int:
		return format(time.UnixMilli(int64(ts))), nil
	case nil:
		return "", fmt.Errorf("nil timestamp")
	default:
		return "", fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func normalizeText(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return format(t), nil
		}
	}
	return "", fmt.Errorf("unrecognized timestamp %q", s)
}

func format(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
