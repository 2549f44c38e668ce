package service

import (
	"fmt"
	"regexp"
	"strings"
)

// KeywordDetector matches a single trigger word in free-form message text.
// The word must be bounded by non-word characters or the string edges, so
// "Attendance," matches while "Attendances" does not. Matching is
// case-insensitive; empty input never matches.
type KeywordDetector struct {
	pattern *regexp.Regexp
}

func NewKeywordDetector(word string) (*KeywordDetector, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("trigger word is empty")
	}

	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("compile trigger pattern for %q: %w", word, err)
	}

	return &KeywordDetector{pattern: pattern}, nil
}

func (d *KeywordDetector) Match(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return d.pattern.MatchString(text)
}
