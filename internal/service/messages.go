package service

import (
	"fmt"
	"strings"
)

const (
	// excerptLimit is the longest excerpt kept verbatim; anything longer is
	// cut to excerptBudget runes plus an ellipsis.
	excerptLimit  = 160
	excerptBudget = 157

	fallbackChatTitle = "a group"

	noLinkSuffix = "This group has no public message links, open the chat to see the full message."
)

// Notification is the payload fanned out to a subscription list. LinkURL is
// empty when the triggering chat has no stable per-message link; in that case
// Text already carries an explanatory suffix.
type Notification struct {
	Text    string
	LinkURL string
}

// BuildAlert renders a keyword-trigger notification. It is deterministic and
// side-effect free: whitespace collapses to single spaces, long excerpts are
// truncated, and the chat title falls back to a generic one when absent.
func BuildAlert(chatTitle, text, link string) Notification {
	if chatTitle == "" {
		chatTitle = fallbackChatTitle
	}

	preview := fmt.Sprintf("In %s: %q", chatTitle, excerpt(text))
	if link == "" {
		preview += "\n\n" + noLinkSuffix
	}

	return Notification{
		Text:    preview,
		LinkURL: link,
	}
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptBudget]) + "…"
}
