package service

import (
	"fmt"
	"strconv"
	"strings"
)

// supergroupMarker prefixes the numeric IDs Telegram assigns to supergroups
// and channels. Messages in those chats have stable t.me/c/ permalinks.
const supergroupMarker = "-100"

// MessageLink returns a best-effort permalink to a message. Chats with a
// public username get a t.me/<username> link, private supergroups get a
// t.me/c/ link with the marker stripped, and anything else yields "" since
// no stable per-message link exists.
func MessageLink(username string, chatID int64, messageID int) string {
	if username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", username, messageID)
	}

	id := strconv.FormatInt(chatID, 10)
	if internal, ok := strings.CutPrefix(id, supergroupMarker); ok && internal != "" {
		return fmt.Sprintf("https://t.me/c/%s/%d", internal, messageID)
	}

	return ""
}
