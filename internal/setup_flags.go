package internal

import (
	"flag"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/rabiawaqar06/studycrew/internal/text"
	"github.com/rabiawaqar06/studycrew/internal/utils"
)

type Configurations struct {
	Model         string
	StdinReplace  string
	ExpectReplace bool
	PrintRaw      bool
	CrewPath      string
	Port          int
}

var defaultFlags = Configurations{
	Model:         "",
	StdinReplace:  "",
	ExpectReplace: false,
	PrintRaw:      false,
	CrewPath:      "",
	Port:          8081,
}

// parseFlags parses CLI flags into an internal Configurations, returning
// the remaining positional arguments.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("studycrew", flag.ContinueOnError)

	mShort := fs.String("m", defaults.Model, "Set the chat model to use. Mutually exclusive with model flag.")
	mLong := fs.String("model", defaults.Model, "Set the chat model to use. Mutually exclusive with m flag.")

	stdinReplaceShort := fs.String("I", defaults.StdinReplace, "Set the string to replace with stdin. (flag syntax borrowed from xargs)")
	stdinReplaceLong := fs.String("replace", defaults.StdinReplace, "Set the string to replace with stdin. (flag syntax borrowed from xargs)")
	expectReplace := fs.Bool("i", defaults.ExpectReplace, "Set to true to replace '{}' with stdin. This is overwritten by -I and -replace.")

	printRawShort := fs.Bool("r", defaults.PrintRaw, "Set to true to print raw output (don't attempt to use 'glow').")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Set to true to print raw output (don't attempt to use 'glow').")

	crewShort := fs.String("c", defaults.CrewPath, "Set the path to a crew definition file, overriding the one in the config dir.")
	crewLong := fs.String("crew", defaults.CrewPath, "Set the path to a crew definition file, overriding the one in the config dir.")

	port := fs.Int("port", defaults.Port, "Set the port for the web UI (serve command).")

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, []string{}, fmt.Errorf("failed to parse args: %w", err)
	}

	postParseArgs := fs.Args()

	model, err := utils.ReturnNonDefault(*mShort, *mLong, defaults.Model)
	exitWithFlagError(err, "m", "model")
	stdinReplace, err := utils.ReturnNonDefault(*stdinReplaceShort, *stdinReplaceLong, defaults.StdinReplace)
	exitWithFlagError(err, "I", "replace")
	crewPath, err := utils.ReturnNonDefault(*crewShort, *crewLong, defaults.CrewPath)
	exitWithFlagError(err, "c", "crew")

	if *expectReplace && stdinReplace == "" {
		stdinReplace = "{}"
	}

	return Configurations{
		Model:         model,
		StdinReplace:  stdinReplace,
		ExpectReplace: *expectReplace,
		PrintRaw:      *printRawShort || *printRawLong,
		CrewPath:      crewPath,
		Port:          *port,
	}, postParseArgs, nil
}

func exitWithFlagError(err error, shortFlag, longFlag string) {
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("flags: '%v' and '%v' are mutually exclusive, err: %v\n", shortFlag, longFlag, err))
		os.Exit(1)
	}
}

// applyFlagOverrides onto the file backed configuration. Flags win over
// config file values, config file values win over defaults.
func applyFlagOverrides(tConf *text.Configurations, flagSet, defaults Configurations) {
	if flagSet.Model != defaults.Model {
		tConf.Model = flagSet.Model
	}
	if flagSet.PrintRaw != defaults.PrintRaw {
		tConf.Raw = flagSet.PrintRaw
	}
	if flagSet.StdinReplace != defaults.StdinReplace {
		tConf.StdinReplace = flagSet.StdinReplace
	}
	if flagSet.CrewPath != defaults.CrewPath {
		tConf.CrewPath = flagSet.CrewPath
	}
}
