package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rabiawaqar06/studycrew/internal/crew"
	"github.com/rabiawaqar06/studycrew/internal/ingest"
	"github.com/rabiawaqar06/studycrew/internal/models"
	"github.com/rabiawaqar06/studycrew/internal/study"
	"github.com/rabiawaqar06/studycrew/internal/text"
	"github.com/rabiawaqar06/studycrew/internal/utils"
	"github.com/rabiawaqar06/studycrew/internal/webapp"
)

type Mode int

const (
	HELP Mode = iota
	STUDY
	LOOP
	SERVE
	URL
	VERSION
)

func getModeFromArgs(cmd string) (Mode, error) {
	switch cmd {
	case "study", "s":
		return STUDY, nil
	case "loop", "l":
		return LOOP, nil
	case "serve":
		return SERVE, nil
	case "url", "u":
		return URL, nil
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%s'", cmd)
	}
}

// Setup parses flags and arguments into a Querier ready to run. The
// returned querier is either a study handler (one-shot or loop) or the
// web UI, depending on the command.
func Setup(ctx context.Context, usage string) (models.Querier, error) {
	flagSet, args, err := parseFlags(defaultFlags, os.Args[1:])
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(0)
	}
	mode, err := getModeFromArgs(args[0])
	if err != nil {
		return nil, err
	}

	switch mode {
	case STUDY, LOOP, SERVE, URL:
		return setupCrewQuerier(ctx, mode, flagSet, args)
	case HELP:
		fmt.Print(usage)
		os.Exit(0)
	case VERSION:
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return nil, errors.New("failed to read build info")
		}
		fmt.Printf("version: %v, go version: %v, checksum: %v\n", bi.Main.Version, bi.GoVersion, bi.Main.Sum)
		os.Exit(0)
	}
	return nil, fmt.Errorf("unknown mode: %v", mode)
}

func setupCrewQuerier(ctx context.Context, mode Mode, flagSet Configurations, args []string) (models.Querier, error) {
	confDir, err := utils.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find config dir: %w", err)
	}
	if err := utils.CreateConfigDir(confDir); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	tConf, err := utils.LoadConfigFromFile(confDir, "studyConfig.json", &text.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	tConf.ConfigDir = confDir
	applyFlagOverrides(&tConf, flagSet, defaultFlags)

	def, err := loadCrewDefinition(confDir, tConf.CrewPath)
	if err != nil {
		return nil, err
	}

	querier, err := CreateChatQuerier(tConf)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat querier: %w", err)
	}

	c, err := crew.New(def, querier)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble crew: %w", err)
	}

	switch mode {
	case STUDY:
		studyText, err := utils.Prompt(tConf.StdinReplace, args)
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt: %w", err)
		}
		return study.NewHandler(c, study.Config{
			StudyText:      studyText,
			Raw:            tConf.Raw,
			TokenWarnLimit: tConf.TokenWarnLimit,
		}), nil
	case LOOP:
		return study.NewHandler(c, study.Config{
			Loop:           true,
			Raw:            tConf.Raw,
			TokenWarnLimit: tConf.TokenWarnLimit,
		}), nil
	case URL:
		if len(args) < 2 {
			return nil, errors.New("url command requires an address, like: 'studycrew url https://example.com/article'")
		}
		studyText, err := ingest.Website(ctx, args[1])
		if err != nil {
			return nil, fmt.Errorf("failed to ingest website: %w", err)
		}
		if strings.TrimSpace(studyText) == "" {
			return nil, fmt.Errorf("no readable text found at: '%v'", args[1])
		}
		return study.NewHandler(c, study.Config{
			StudyText:      studyText,
			Raw:            tConf.Raw,
			TokenWarnLimit: tConf.TokenWarnLimit,
		}), nil
	case SERVE:
		// The web UI renders stage output itself, keep vendor
		// streaming off the terminal
		if q, ok := querier.(interface{ SetOutput(io.Writer) }); ok {
			q.SetOutput(io.Discard)
		}
		app, err := webapp.New(c)
		if err != nil {
			return nil, fmt.Errorf("failed to create web app: %w", err)
		}
		return &webapp.Handler{
			App:  app,
			Addr: fmt.Sprintf(":%d", flagSet.Port),
		}, nil
	}
	return nil, fmt.Errorf("unknown mode: %v", mode)
}

func loadCrewDefinition(confDir, crewPath string) (crew.Definition, error) {
	if crewPath != "" {
		def, err := crew.LoadDefinition(crewPath)
		if err != nil {
			return crew.Definition{}, fmt.Errorf("failed to load crew definition from '%v': %w", crewPath, err)
		}
		return def, nil
	}
	def, err := crew.EnsureDefinition(confDir)
	if err != nil {
		return crew.Definition{}, fmt.Errorf("failed to load crew definition: %w", err)
	}
	return def, nil
}
