package models

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Querier is anything which may be queried for some result. The
// result is handled internally, most often by printing it to stdout.
type Querier interface {
	Query(ctx context.Context) error
}

// ChatQuerier is a Querier which also exposes the underlying chat,
// so that consecutive queries may build on earlier ones.
type ChatQuerier interface {
	Querier
	TextQuery(context.Context, Chat) (Chat, error)
}

// StreamCompleter streams completion events from some chat model vendor.
type StreamCompleter interface {
	// Setup the stream completer, returning an error if setup fails.
	// Commonly this checks for API keys and configures the http client.
	Setup() error

	// StreamCompletions for the given chat. The returned channel carries
	// CompletionEvents: string tokens, errors, NoopEvent or StopEvent.
	StreamCompletions(context.Context, Chat) (chan CompletionEvent, error)
}

// CompletionEvent is one event in a completions stream. It may be a
// string token, an error, a NoopEvent or a StopEvent.
type CompletionEvent any

// NoopEvent are events which the completions stream may safely ignore.
type NoopEvent struct{}

// StopEvent marks the graceful end of a completions stream.
type StopEvent struct{}

type Chat struct {
	Created  time.Time `json:"created,omitempty"`
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FirstSystemMessage returns the first encountered Message with role 'system'
func (c *Chat) FirstSystemMessage() (Message, error) {
	for _, msg := range c.Messages {
		if msg.Role == "system" {
			return msg, nil
		}
	}
	return Message{}, errors.New("failed to find any system message")
}

// FirstUserMessage returns the first encountered Message with role 'user'
func (c *Chat) FirstUserMessage() (Message, error) {
	for _, msg := range c.Messages {
		if msg.Role == "user" {
			return msg, nil
		}
	}
	return Message{}, errors.New("failed to find any user message")
}

// LastOfRole returns the last message of the given role, along with its
// index in the message slice.
func (c *Chat) LastOfRole(role string) (Message, int, error) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.Role == role {
			return msg, i, nil
		}
	}
	return Message{}, -1, fmt.Errorf("failed to find any %v message", role)
}
