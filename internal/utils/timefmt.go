package utils

import (
	"time"
)

const modificationTimeLayout = "2006-01-02 15:04"

// FormatTimestamp renders a modification time in the local time zone with
// minute precision. Zero times produce an empty string.
func FormatTimestamp(moment time.Time) string {
	if moment.IsZero() {
		return ""
	}
	return moment.In(time.Local).Format(modificationTimeLayout)
}
