package domain

import (
	"strings"
	"time"
)

// ShareAckTTL is how long the "copied" acknowledgment stays visible.
const ShareAckTTL = 2 * time.Second

// LetterIDParam is the single query parameter the app recognises.
const LetterIDParam = "letterId"

// ShareURL returns the deep link for a letter: origin plus the letter id verbatim.
func ShareURL(origin, letterID string) string {
	return strings.TrimRight(origin, "/") + "?" + LetterIDParam + "=" + letterID
}
