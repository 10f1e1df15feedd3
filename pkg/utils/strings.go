package utils

import (
	"strings"
)

// SplitAndTrim splits a comma separated value into trimmed entries, dropping
// empties. Used for the tags and amenities form fields, which arrive either as
// "WiFi, AC" or as repeated values.
func SplitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
