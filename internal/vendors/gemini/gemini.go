package gemini

import (
	"fmt"

	"github.com/rabiawaqar06/studycrew/internal/text/generic"
)

// ChatURL is Google's OpenAI compatible endpoint for the Gemini models.
const ChatURL = "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"

var Default = Gemini{
	Model:       "gemini-2.0-flash",
	Temperature: 0.7,
	TopP:        1.0,
	URL:         ChatURL,
}

type Gemini struct {
	generic.StreamCompleter
	Model       string  `json:"model"`
	MaxTokens   *int    `json:"max_tokens"` // Use a pointer to allow null value
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	URL         string  `json:"url"`
}

func (g *Gemini) Setup() error {
	err := g.StreamCompleter.Setup("GEMINI_API_KEY", g.url(), "GEMINI_DEBUG")
	if err != nil {
		return fmt.Errorf("failed to setup stream completer: %w", err)
	}
	g.StreamCompleter.Model = g.Model
	g.StreamCompleter.MaxTokens = g.MaxTokens
	g.StreamCompleter.Temperature = &g.Temperature
	g.StreamCompleter.TopP = &g.TopP
	return nil
}

func (g *Gemini) url() string {
	if g.URL == "" {
		return ChatURL
	}
	return g.URL
}
