package generic

import (
	"net/http"

	"github.com/rabiawaqar06/studycrew/internal/models"
)

// StreamCompleter follows the OpenAI chat completions protocol, which by
// now is the lingua franca of hosted chat model vendors. Gemini, OpenAI
// and most OpenAI-compatible endpoints are covered by this one struct.
type StreamCompleter struct {
	Model            string
	FrequencyPenalty *float64
	MaxTokens        *int
	PresencePenalty  *float64
	Temperature      *float64
	TopP             *float64
	// Clean the message history before sending it, in case the vendor
	// is picky about message ordering or roles. Not part of the model
	// config file.
	Clean   func([]models.Message) []models.Message `json:"-"`
	url     string
	client  *http.Client
	limiter RateLimiter
	apiKey  string
	debug   bool
}

type chatCompletionChunk struct {
	ID                string   `json:"id"`
	Object            string   `json:"object"`
	Created           int      `json:"created"`
	Model             string   `json:"model"`
	SystemFingerprint string   `json:"system_fingerprint"`
	Choices           []Choice `json:"choices"`
}

type Choice struct {
	Index        int    `json:"index"`
	Delta        Delta  `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type Delta struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type req struct {
	Model            string           `json:"model,omitempty"`
	ResponseFormat   responseFormat   `json:"response_format,omitempty"`
	Messages         []models.Message `json:"messages,omitempty"`
	Stream           bool             `json:"stream,omitempty"`
	FrequencyPenalty *float64         `json:"frequency_penalty,omitempty"`
	MaxTokens        *int             `json:"max_tokens,omitempty"`
	PresencePenalty  *float64         `json:"presence_penalty,omitempty"`
	Temperature      *float64         `json:"temperature,omitempty"`
	TopP             *float64         `json:"top_p,omitempty"`
}
