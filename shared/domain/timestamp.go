package domain

import "time"

// TimestampLayout is the canonical textual form of store timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CanonicalTimestamp converts a store timestamp, substituting now when the
// document has none.
func CanonicalTimestamp(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return FormatTimestamp(now)
	}
	return FormatTimestamp(*t)
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
