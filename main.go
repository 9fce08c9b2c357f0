package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/rabiawaqar06/studycrew/internal"
	"github.com/rabiawaqar06/studycrew/internal/utils"
)

const usage = `studycrew - an agentic study helper

Runs a crew of agents over your study material: one summarizes the key
points, one explains them in simple terms and one generates practice
questions. Works with Gemini, OpenAI or a local Ollama.

Prerequisites:
  - Set the GEMINI_API_KEY environment variable to your Gemini API key, or
  - Set the OPENAI_API_KEY environment variable to your OpenAI API key, or
  - Run a local Ollama and pick a '<model>:<tag>' model
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output
  - (Optional) Install glow - https://github.com/charmbracelet/glow for formatted markdown output

Usage: studycrew [flags] <command>

Flags:
  -m, -model string     Set the chat model to use. (default is found in studyConfig.json)
  -c, -crew string      Set the path to a crew definition file. (default is crew.yaml in the config dir)
  -r, -raw bool         Set to true to print raw output (don't attempt to use 'glow'). (default false)
  -I, -replace string   Set the string to replace with stdin. (flag syntax borrowed from xargs)
  -i bool               Set to true to replace '{}' with stdin. This is overwritten by -I and -replace. (default false)
  -port int             Set the port for the web UI. (default 8081)

Commands:
  h|help                Display this help message
  s|study <text>        Run the study crew over the given text
  l|loop                Read study texts interactively, running the crew on each
  u|url <address>       Fetch a web page and run the study crew over its text
  serve                 Start the web UI
  v|version             Display the version

Examples:
  - studycrew study "Photosynthesis is the process by which plants..."
  - cat chapter3.txt | studycrew study
  - studycrew -I TEXT study "Explain this to a beginner: TEXT"
  - studycrew -m gpt-4o-mini study "The French Revolution began in 1789..."
  - studycrew -m llama3.2:latest loop
  - studycrew url https://en.wikipedia.org/wiki/Mitochondrion
  - studycrew -port 8080 serve
`

func main() {
	ancli.SetupSlog()
	if misc.Truthy(os.Getenv("DEBUG_CPU")) {
		f, err := os.Create("cpu_profile.prof")
		ok := true
		if err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to create profiler file: %v", err))
			ok = false
		}
		if ok {
			defer f.Close()
			err = pprof.StartCPUProfile(f)
			if err != nil {
				ancli.PrintErr(fmt.Sprintf("failed to start profiler : %v", err))
			}
			defer pprof.StopCPUProfile()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	querier, err := internal.Setup(ctx, usage)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			os.Exit(0)
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		os.Exit(1)
	}
	go func() { shutdown.Monitor(cancel) }()
	err = querier.Query(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			os.Exit(0)
		}
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		os.Exit(1)
	}
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
}
