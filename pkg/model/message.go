package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MessageMaxLength = 500

var ErrMessageEmpty = errors.New("message must not be empty")
var ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", MessageMaxLength)

// Message is one chat entry in a lobby. Ordering is server-assigned and
// ascending by creation time; the client never re-sorts.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateMessage checks an outgoing chat message body.
func ValidateMessage(body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrMessageEmpty
	}
	if utf8.RuneCountInString(body) > MessageMaxLength {
		return ErrMessageTooLong
	}
	return nil
}

// FormatAge renders a message timestamp relative to now, the way the chat
// view displays it ("now", "5m ago", "3h ago", or the date).
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2 Jan 15:04")
	}
}
