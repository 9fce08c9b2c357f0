package vendors

import (
	"context"

	"github.com/rabiawaqar06/studycrew/internal/models"
)

// Mock is a StreamCompleter that echoes the last user message. It backs
// the 'mock' model, which exists to test the pipeline without spending
// tokens on a hosted vendor.
type Mock struct {
	// Responses, when set, are returned in order on consecutive calls.
	Responses []string
	calls     int
}

func (m *Mock) Setup() error {
	return nil
}

func (m *Mock) StreamCompletions(ctx context.Context, chat models.Chat) (chan models.CompletionEvent, error) {
	ch := make(chan models.CompletionEvent, 2)
	response := ""
	if len(m.Responses) > 0 {
		response = m.Responses[m.calls%len(m.Responses)]
		m.calls++
	} else {
		uMsg, _, err := chat.LastOfRole("user")
		if err == nil {
			response = uMsg.Content
		}
	}
	go func() {
		defer close(ch)
		select {
		case <-ctx.Done():
			return
		case ch <- response:
		}
		ch <- models.StopEvent{}
	}()
	return ch, nil
}
