package generic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/rabiawaqar06/studycrew/internal/models"
)

var dataPrefix = []byte("data: ")

// StreamCompletions taking the messages as prompt conversation. Returns the
// streamed events from the chat model.
func (s *StreamCompleter) StreamCompletions(ctx context.Context, chat models.Chat) (chan models.CompletionEvent, error) {
	if s.Clean != nil {
		cpy := make([]models.Message, len(chat.Messages))
		copy(cpy, chat.Messages)
		chat.Messages = s.Clean(cpy)
	}
	s.limiter.WaitIfNeeded(ctx)
	req, err := s.createRequest(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	if err := s.limiter.UpdateFromHeaders(res.Header); err != nil && s.debug {
		ancli.PrintWarn(fmt.Sprintf("failed to update rate limiter: %v\n", err))
	}
	return s.handleStreamResponse(ctx, res), nil
}

func (s *StreamCompleter) createRequest(ctx context.Context, chat models.Chat) (*http.Request, error) {
	reqData := req{
		Model:            s.Model,
		FrequencyPenalty: s.FrequencyPenalty,
		MaxTokens:        s.MaxTokens,
		PresencePenalty:  s.PresencePenalty,
		Temperature:      s.Temperature,
		TopP:             s.TopP,
		ResponseFormat:   responseFormat{Type: "text"},
		Messages:         chat.Messages,
		Stream:           true,
	}
	if s.debug {
		ancli.PrintOK(fmt.Sprintf("generic streamcompleter request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", s.apiKey))
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Connection", "keep-alive")
	return req, nil
}

func (s *StreamCompleter) handleStreamResponse(ctx context.Context, res *http.Response) chan models.CompletionEvent {
	outChan := make(chan models.CompletionEvent)
	go func() {
		br := bufio.NewReader(res.Body)
		defer func() {
			res.Body.Close()
			close(outChan)
		}()
		for {
			if ctx.Err() != nil {
				return
			}
			token, err := br.ReadBytes('\n')
			if err != nil {
				if err == io.EOF {
					outChan <- models.StopEvent{}
					return
				}
				outChan <- fmt.Errorf("failed to read line: %w", err)
				return
			}
			event := s.handleStreamChunk(token)
			outChan <- event
			if _, isStop := event.(models.StopEvent); isStop {
				return
			}
		}
	}()

	return outChan
}

func (s *StreamCompleter) handleStreamChunk(token []byte) models.CompletionEvent {
	token = bytes.TrimPrefix(token, dataPrefix)
	token = bytes.TrimSpace(token)
	if len(token) == 0 {
		return models.NoopEvent{}
	}
	if string(token) == "[DONE]" {
		return models.StopEvent{}
	}

	if s.debug {
		ancli.PrintOK(fmt.Sprintf("token: %+v\n", string(token)))
	}
	var chunk chatCompletionChunk
	err := json.Unmarshal(token, &chunk)
	if err != nil {
		if misc.Truthy(os.Getenv("DEBUG")) {
			// Expect some failing unmarshalls, which seems to be fine
			ancli.PrintWarn(fmt.Sprintf("failed to unmarshal token: %v, err: %v\n", string(token), err))
		}
		return models.NoopEvent{}
	}
	if len(chunk.Choices) == 0 {
		return models.NoopEvent{}
	}
	choice := chunk.Choices[0]
	if choice.FinishReason == "stop" && choice.Delta.Content == "" {
		return models.StopEvent{}
	}
	return choice.Delta.Content
}

// heuristicTokenCountFactor is used to approximate token usage when
// the vendor does not expose an endpoint for counting tokens.
const heuristicTokenCountFactor = 1.1

// CountInputTokens estimates the amount of input tokens in the chat.
func (s *StreamCompleter) CountInputTokens(ctx context.Context, chat models.Chat) (int, error) {
	var count int
	for _, m := range chat.Messages {
		count += len(strings.Split(m.Content, " "))
	}
	return int(float64(count) * heuristicTokenCountFactor), nil
}
