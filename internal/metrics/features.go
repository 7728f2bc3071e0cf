// Package metrics derives size features from text without retaining it.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features are the counts telemetry records instead of the text itself.
type Features struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

func CountFeatures(s string) Features {
	return Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
		Lines: countLines(s),
	}
}

// countLines is 0 for the empty string, else 1 plus the newline count.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}
