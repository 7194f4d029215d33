package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// ChatHistoryLimit is how many of the latest messages the chat shows.
	ChatHistoryLimit = 10
	maxChatText      = 500
)

// ChatMessage is one line of the guest chat.
type ChatMessage struct {
	ID        string    `json:"id"`
	Submitter Submitter `json:"-"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewChatMessage trims the text and name; a blank name becomes "Guest". ID and
// CreatedAt are assigned by the store.
func NewChatMessage(submitter Submitter, name, text string) (*ChatMessage, error) {
	if submitter.IsZero() {
		return nil, fmt.Errorf("%w: chat messages need a sender", ErrValidation)
	}
	msg := &ChatMessage{
		Submitter: submitter,
		Name:      DisplayName(name),
		Text:      strings.TrimSpace(text),
	}
	if msg.Text == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(msg.Text) > maxChatText {
		return nil, fmt.Errorf("%w: message must not exceed %d characters", ErrValidation, maxChatText)
	}
	if utf8.RuneCountInString(msg.Name) > maxNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrValidation, maxNameLength)
	}
	return msg, nil
}
