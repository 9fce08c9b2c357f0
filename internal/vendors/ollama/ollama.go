package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/ollama/ollama/api"
	"github.com/rabiawaqar06/studycrew/internal/models"
)

const defaultURL = "http://localhost:11434"

var Default = Ollama{
	Model: "llama3.2",
	URL:   defaultURL,
}

// Ollama runs study crews against a local model using the official
// Ollama API client. No API key needed.
type Ollama struct {
	Model  string `json:"model"`
	URL    string `json:"url"`
	client *api.Client
	debug  bool
}

func (o *Ollama) Setup() error {
	baseURL := o.URL
	if envURL := os.Getenv("OLLAMA_API_URL"); envURL != "" {
		baseURL = envURL
	}
	if baseURL == "" {
		baseURL = defaultURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse ollama url '%v': %w", baseURL, err)
	}
	o.client = api.NewClient(base, &http.Client{
		// Local models may take their sweet time
		Timeout: 300 * time.Second,
	})
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("OLLAMA_DEBUG")) {
		o.debug = true
	}
	return nil
}

func (o *Ollama) StreamCompletions(ctx context.Context, chat models.Chat) (chan models.CompletionEvent, error) {
	if o.client == nil {
		return nil, fmt.Errorf("ollama client not setup, call Setup() first")
	}
	messages := make([]api.Message, 0, len(chat.Messages))
	for _, msg := range chat.Messages {
		messages = append(messages, api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	stream := true
	req := &api.ChatRequest{
		Model:    o.Model,
		Messages: messages,
		Stream:   &stream,
	}
	outChan := make(chan models.CompletionEvent)
	go func() {
		defer close(outChan)
		err := o.client.Chat(ctx, req, func(cr api.ChatResponse) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case outChan <- models.CompletionEvent(cr.Message.Content):
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			outChan <- fmt.Errorf("ollama chat failed: %w", err)
			return
		}
		outChan <- models.StopEvent{}
	}()
	return outChan, nil
}

// CountInputTokens estimates input tokens. Local models are free, so the
// estimate only serves the token warn limit.
func (o *Ollama) CountInputTokens(ctx context.Context, chat models.Chat) (int, error) {
	var count int
	for _, m := range chat.Messages {
		count += len(m.Content) / 4
	}
	return count, nil
}
