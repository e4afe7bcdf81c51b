package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UUID returns a v4 uuid without dashes (32 hex chars)
func UUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetDatesString formats a unix-seconds range for album subtitles
func GetDatesString(min, max int64) string {
	if min == 0 || max == 0 {
		return ""
	}
	minString := time.Unix(min, 0).Format("2 Jan 2006")
	if max-min <= 86400 {
		return minString
	}
	maxString := time.Unix(max, 0).Format("2 Jan 2006")
	return minString + " - " + maxString
}
