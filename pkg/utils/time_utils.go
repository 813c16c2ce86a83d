package utils

import "time"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// DayKey identifies a calendar day in UTC, e.g. "2025-03-14". Tips are
// stored once per user per day key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func FormatRFC3339(unixSeconds int64) string {
	if unixSeconds <= 0 {
		return ""
	}
	return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
}
