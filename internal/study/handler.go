// Package study drives crew runs from the command line: either a single
// run over a given text, or an interactive loop reading pasted study
// material until the user quits.
package study

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/rabiawaqar06/studycrew/internal/crew"
	"github.com/rabiawaqar06/studycrew/internal/models"
	"github.com/rabiawaqar06/studycrew/internal/utils"
)

// wordsPerTokenFactor approximates tokens from whitespace separated
// words, same heuristic as the completers use.
const wordsPerTokenFactor = 1.1

type Handler struct {
	Crew *crew.Crew
	// StudyText for one-shot runs. Ignored when Loop is set.
	StudyText string
	// Loop makes Query read study texts interactively until the user quits.
	Loop bool
	Raw  bool
	// TokenWarnLimit warns before sending very large texts. Zero disables.
	TokenWarnLimit int

	username string
	in       io.Reader
	out      io.Writer
}

func NewHandler(c *crew.Crew, conf Config) *Handler {
	h := &Handler{
		Crew:           c,
		StudyText:      conf.StudyText,
		Loop:           conf.Loop,
		Raw:            conf.Raw,
		TokenWarnLimit: conf.TokenWarnLimit,
		in:             os.Stdin,
		out:            os.Stdout,
	}
	currentUser, err := user.Current()
	if err == nil {
		h.username = currentUser.Username
	} else {
		h.username = "user"
	}
	c.OnStageStart = func(task crew.Task, agent crew.Agent) {
		fmt.Fprintln(h.out)
		ancli.Okf("%v is working on '%v'...\n", agent.Role, task.Name)
	}
	return h
}

type Config struct {
	StudyText      string
	Loop           bool
	Raw            bool
	TokenWarnLimit int
}

// Query runs the crew once, or repeatedly in loop mode. Implements
// models.Querier.
func (h *Handler) Query(ctx context.Context) error {
	if !h.Loop {
		return h.runOnce(ctx, h.StudyText)
	}
	scanner := utils.NewMultilineScanner(h.in)
	for {
		fmt.Fprintln(h.out, "Paste your study text below (press Enter twice when done, 'q' to quit):")
		text, err := utils.ReadMultiline(scanner)
		if err != nil {
			if errors.Is(err, utils.ErrUserInitiatedExit) {
				return err
			}
			ancli.PrintWarn(fmt.Sprintf("%v\n", err))
			continue
		}
		if err := h.runOnce(ctx, text); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			ancli.PrintErr(fmt.Sprintf("study run failed: %v\n", err))
		}
	}
}

func (h *Handler) runOnce(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("no study text provided")
	}
	h.warnOnLargeText(text)
	ancli.Okf("processing text (%v characters)...\n", len(text))

	report, err := h.Crew.Kickoff(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to run study crew: %w", err)
	}

	fmt.Fprintf(h.out, "\n%v\n", strings.Repeat("=", 50))
	ancli.Okf("study helper crew complete!\n")
	fmt.Fprintln(h.out, strings.Repeat("=", 50))
	return utils.AttemptPrettyPrint(models.Message{
		Role:    "assistant",
		Content: report.Render(),
	}, h.username, h.Raw)
}

func (h *Handler) warnOnLargeText(text string) {
	if h.TokenWarnLimit <= 0 {
		return
	}
	// The text passes through every stage, so it costs roughly
	// len(tasks) times its own token count
	estimate := int(float64(len(strings.Fields(text))) * wordsPerTokenFactor * float64(len(h.Crew.Tasks)))
	if estimate > h.TokenWarnLimit {
		ancli.PrintWarn(fmt.Sprintf("study text is large, estimated %v tokens across %v stages\n", estimate, len(h.Crew.Tasks)))
	}
}
