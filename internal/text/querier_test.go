package text

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/rabiawaqar06/studycrew/internal/models"
)

type MockQuerier struct {
	Somefield   string `json:"somefield"`
	shouldBlock bool
	// stringChan is used to simulate a stream of completions. Send
	// 'CLOSE' to close the stream
	stringChan chan string
	// errChan is used to simulate a stream of errors
	errChan chan error
}

func (q *MockQuerier) Setup() error {
	return nil
}

func (q *MockQuerier) StreamCompletions(ctx context.Context, chat models.Chat) (chan models.CompletionEvent, error) {
	if q.shouldBlock {
		ch := make(chan struct{})
		<-ch
	}
	// simulate a stream of completions via the stringChan, so that
	// it's possible to send messages from outside the test
	if q.stringChan != nil {
		outChan := make(chan models.CompletionEvent)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case err := <-q.errChan:
					outChan <- models.CompletionEvent(err)
				case msg := <-q.stringChan:
					if msg == "CLOSE" {
						close(outChan)
						return
					}
					outChan <- models.CompletionEvent(msg)
				}
			}
		}()
		return outChan, nil
	}
	return nil, nil
}

func Test_Querier_NewQuerier(t *testing.T) {
	t.Run("it should load local model with correct type", func(t *testing.T) {
		want := "somevalue"
		model := "mock"
		savedModel := MockQuerier{
			Somefield: want,
		}
		data, err := json.Marshal(savedModel)
		if err != nil {
			t.Fatalf("failed to marshal savedModel: %v", err)
		}
		tmpDir := t.TempDir()
		err = os.WriteFile(path.Join(tmpDir, fmt.Sprintf("%v.json", model)), data, os.FileMode(0o644))
		if err != nil {
			t.Fatalf("failed to write mock savedModel: %v", err)
		}
		conf := Configurations{
			Model:     model,
			ConfigDir: tmpDir,
		}

		// Here we want to ensure that using only the conf + the type of the
		// model, we get the correct querier back
		q, err := NewQuerier(conf, &MockQuerier{})
		if err != nil {
			t.Errorf("got error: %v", err)
		}
		if q.Model == nil {
			t.Fatalf("expected model to be set")
		}
		if q.Model.Somefield != want {
			t.Error("expected Model to be of type *MockQuerier")
		}
	})

	t.Run("it should write the default model config on first use", func(t *testing.T) {
		tmpDir := t.TempDir()
		conf := Configurations{
			Model:     "mock",
			ConfigDir: tmpDir,
		}
		_, err := NewQuerier(conf, &MockQuerier{Somefield: "dflt"})
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		data, err := os.ReadFile(path.Join(tmpDir, "mock.json"))
		if err != nil {
			t.Fatalf("expected default config to be written: %v", err)
		}
		var got MockQuerier
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("failed to unmarshal written config: %v", err)
		}
		if got.Somefield != "dflt" {
			t.Errorf("expected written config to carry the default, got: %v", got.Somefield)
		}
	})
}

func Test_Context(t *testing.T) {
	q := Querier[*MockQuerier]{
		Model: &MockQuerier{
			shouldBlock: true,
		},
		out: io.Discard,
	}
	testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
		q.Query(ctx)
	}, time.Second*1)
}

func Test_Querier_Query_strings(t *testing.T) {
	testCases := []struct {
		desc  string
		given []string
		want  string
	}{
		{
			desc:  "it should write tokens to out",
			given: []string{"test", "CLOSE"},
			want:  "test",
		},
		{
			desc:  "token whitespace should be respected",
			given: []string{" one", "two\n", "three ", "CLOSE"},
			want: ` onetwo
three `,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			model := &MockQuerier{stringChan: make(chan string)}
			q := Querier[*MockQuerier]{
				Raw:   true,
				Model: model,
			}
			out := &bytes.Buffer{}
			q.SetOutput(out)
			go func() {
				for _, msg := range tC.given {
					model.stringChan <- msg
				}
			}()

			err := q.Query(context.Background())
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if got := out.String(); got != tC.want {
				t.Fatalf("expected: %q, got: %q", tC.want, got)
			}
		})
	}
}

func Test_Querier_Query_errors(t *testing.T) {
	testCases := []struct {
		desc  string
		given error
		want  error
	}{
		{
			desc:  "given EOF it should exit without error",
			given: io.EOF,
			want:  nil,
		},
		{
			desc:  "given context cancel error it should exit without error",
			given: context.Canceled,
			want:  nil,
		},
		{
			desc:  "on some other error, the error should be returned",
			given: errors.New("some other error"),
			want:  errors.New("some other error"),
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			model := &MockQuerier{
				stringChan: make(chan string),
				errChan:    make(chan error),
			}
			q := Querier[*MockQuerier]{
				Raw:   true,
				Model: model,
			}
			q.SetOutput(io.Discard)
			go func() {
				model.errChan <- tC.given
			}()

			err := q.Query(context.Background())
			if tC.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tC.given) {
				t.Fatalf("expected wrapped error: %v, got: %v", tC.given, err)
			}
		})
	}
}

func Test_Querier_TextQuery(t *testing.T) {
	t.Run("it should append the reply as an assistant message", func(t *testing.T) {
		model := &MockQuerier{stringChan: make(chan string)}
		q := Querier[*MockQuerier]{Raw: true, Model: model}
		q.SetOutput(io.Discard)
		go func() {
			model.stringChan <- "the "
			model.stringChan <- "reply"
			model.stringChan <- "CLOSE"
		}()

		chat, err := q.TextQuery(context.Background(), models.Chat{
			Messages: []models.Message{{Role: "user", Content: "hello"}},
		})
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		msg, _, err := chat.LastOfRole("assistant")
		if err != nil {
			t.Fatalf("expected assistant message: %v", err)
		}
		if msg.Content != "the reply" {
			t.Fatalf("expected: 'the reply', got: %q", msg.Content)
		}
	})

	t.Run("consecutive queries should not leak earlier replies", func(t *testing.T) {
		model := &MockQuerier{stringChan: make(chan string)}
		q := Querier[*MockQuerier]{Raw: true, Model: model}
		q.SetOutput(io.Discard)

		feed := func(msgs ...string) {
			go func() {
				for _, msg := range msgs {
					model.stringChan <- msg
				}
			}()
		}

		feed("first", "CLOSE")
		_, err := q.TextQuery(context.Background(), models.Chat{
			Messages: []models.Message{{Role: "user", Content: "one"}},
		})
		if err != nil {
			t.Fatalf("got error: %v", err)
		}

		feed("second", "CLOSE")
		chat, err := q.TextQuery(context.Background(), models.Chat{
			Messages: []models.Message{{Role: "user", Content: "two"}},
		})
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		msg, _, err := chat.LastOfRole("assistant")
		if err != nil {
			t.Fatalf("expected assistant message: %v", err)
		}
		if msg.Content != "second" {
			t.Fatalf("expected the second reply only, got: %q", msg.Content)
		}
	})
}
