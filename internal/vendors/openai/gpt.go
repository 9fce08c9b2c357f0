package openai

import (
	"fmt"

	"github.com/rabiawaqar06/studycrew/internal/text/generic"
)

const ChatURL = "https://api.openai.com/v1/chat/completions"

var Default = Gpt{
	Model:       "gpt-4o-mini",
	Temperature: 0.7,
	TopP:        1.0,
	URL:         ChatURL,
}

type Gpt struct {
	generic.StreamCompleter
	Model            string  `json:"model"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	MaxTokens        *int    `json:"max_tokens"` // Use a pointer to allow null value
	PresencePenalty  float64 `json:"presence_penalty"`
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"top_p"`
	URL              string  `json:"url"`
}

func (g *Gpt) Setup() error {
	url := g.URL
	if url == "" {
		url = ChatURL
	}
	err := g.StreamCompleter.Setup("OPENAI_API_KEY", url, "OPENAI_DEBUG")
	if err != nil {
		return fmt.Errorf("failed to setup stream completer: %w", err)
	}
	g.StreamCompleter.Model = g.Model
	g.StreamCompleter.FrequencyPenalty = &g.FrequencyPenalty
	g.StreamCompleter.MaxTokens = g.MaxTokens
	g.StreamCompleter.PresencePenalty = &g.PresencePenalty
	g.StreamCompleter.Temperature = &g.Temperature
	g.StreamCompleter.TopP = &g.TopP
	g.StreamCompleter.SetRateLimiter(generic.NewRateLimiter(
		"x-ratelimit-remaining-tokens",
		"x-ratelimit-reset-tokens",
	))
	return nil
}
