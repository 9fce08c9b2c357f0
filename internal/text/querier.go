package text

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/rabiawaqar06/studycrew/internal/models"
	"github.com/rabiawaqar06/studycrew/internal/utils"
)

// Querier streams completions from the underlying model and keeps the
// full conversation, so that crew stages may build on one another.
type Querier[C models.StreamCompleter] struct {
	Raw       bool
	Model     C
	chat      models.Chat
	username  string
	termWidth int
	lineCount int
	line      string
	fullMsg   string
	debug     bool

	// out receives the streamed tokens. Set to io.Discard for silent
	// queries, for instance when serving web requests.
	out io.Writer
}

// NewQuerier loads the per-model configuration file from the config dir,
// writing the given default on first use, and sets the model up.
func NewQuerier[C models.StreamCompleter](userConf Configurations, dfault C) (*Querier[C], error) {
	configPath := path.Join(userConf.ConfigDir, fmt.Sprintf("%v.json", userConf.Model))
	querier := Querier[C]{}
	modelConf := dfault
	err := utils.ReadAndUnmarshal(configPath, &modelConf)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			data, err := json.MarshalIndent(dfault, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default model: %v, error: %w", dfault, err)
			}
			if err := os.WriteFile(configPath, data, 0o644); err != nil {
				ancli.PrintWarn(fmt.Sprintf("failed to write default model config: %v\n", err))
			}
		} else {
			return nil, fmt.Errorf("failed to load querier of model: %v, error: %w", userConf.Model, err)
		}
	}

	err = modelConf.Setup()
	if err != nil {
		return nil, fmt.Errorf("failed to setup model: %w", err)
	}

	termWidth, err := utils.TermWidth()
	querier.termWidth = termWidth
	if err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to get terminal size: %v\n", err))
	}
	currentUser, err := user.Current()
	if err == nil {
		querier.username = currentUser.Username
	} else {
		querier.username = "user"
	}
	querier.Model = modelConf
	querier.Raw = userConf.Raw
	querier.out = os.Stdout
	if misc.Truthy(os.Getenv("DEBUG")) {
		querier.debug = true
	}
	return &querier, nil
}

// SetOutput redirects the streamed tokens. Passing io.Discard makes
// TextQuery silent, which is what the web front end wants.
func (q *Querier[C]) SetOutput(out io.Writer) {
	q.out = out
}

// Query using the underlying model to stream completions and write the
// output to q.out. Blocking operation.
func (q *Querier[C]) Query(ctx context.Context) error {
	q.fullMsg = ""
	q.line = ""
	q.lineCount = 0
	completionsChan, err := q.Model.StreamCompletions(ctx, q.chat)
	if err != nil {
		return fmt.Errorf("failed to stream completions: %w", err)
	}

	for {
		select {
		case completion, ok := <-completionsChan:
			// Channel most likely gracefully closed
			if !ok {
				return nil
			}
			done, err := q.handleCompletion(completion)
			if err != nil {
				// context cancellations and EOF are expected and handled elsewhere
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("failed to handle completion: %w", err)
			}
			if done {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// TextQuery performs a single query over the given chat and returns the
// chat with the model's reply appended as an assistant message.
func (q *Querier[C]) TextQuery(ctx context.Context, chat models.Chat) (models.Chat, error) {
	q.chat = chat
	err := q.Query(ctx)
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to query: %w", err)
	}
	q.chat.Messages = append(q.chat.Messages, models.Message{
		Role:    "assistant",
		Content: q.fullMsg,
	})
	if q.debug {
		ancli.PrintOK(fmt.Sprintf("chat: %v\n", q.chat))
	}
	return q.chat, nil
}

func (q *Querier[C]) handleCompletion(completion models.CompletionEvent) (bool, error) {
	switch cast := completion.(type) {
	case string:
		q.handleToken(cast)
		return false, nil
	case error:
		return false, fmt.Errorf("completion stream error: %w", cast)
	case models.NoopEvent:
		return false, nil
	case models.StopEvent:
		return true, nil
	default:
		return false, fmt.Errorf("unknown completion type: %v", completion)
	}
}

func (q *Querier[C]) handleToken(token string) {
	if q.out == io.Discard {
		q.fullMsg += token
		return
	}
	if q.termWidth > 0 {
		utils.UpdateMessageTerminalMetadata(token, &q.line, &q.lineCount, q.termWidth)
	}
	q.fullMsg += token
	fmt.Fprint(q.out, token)
}
