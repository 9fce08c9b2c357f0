package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Prompt returns the study text by checking all the arguments and stdin.
// If there are no arguments, but data in stdin, stdin will become the text.
// If there are arguments and data in stdin, all stdinReplace tokens will be
// substituted with the data in stdin
func Prompt(stdinReplace string, args []string) (string, error) {
	debug := misc.Truthy(os.Getenv("DEBUG"))
	if debug {
		ancli.PrintOK(fmt.Sprintf("stdinReplace: %v\n", stdinReplace))
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}
	hasPipe := fi.Mode()&os.ModeNamedPipe != 0

	if len(args) == 1 && !hasPipe {
		return "", errors.New("found no study text, set args or pipe in some string")
	}
	// First argument is the command, so we skip it
	args = args[1:]
	// If no data is in stdin, simply return args
	if !hasPipe {
		return strings.Join(args, " "), nil
	}

	inputData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %v", err)
	}
	pipeIn := string(inputData)
	if len(args) == 0 {
		return strings.TrimSpace(pipeIn), nil
	}

	// Replace all occurrences of stdinReplace with pipeIn
	if stdinReplace != "" {
		if debug {
			ancli.PrintOK(fmt.Sprintf("attempting to replace: '%v' with stdin\n", stdinReplace))
		}
		for i, arg := range args {
			if strings.Contains(arg, stdinReplace) {
				args[i] = strings.ReplaceAll(arg, stdinReplace, pipeIn)
			}
		}
		return strings.Join(args, " "), nil
	}

	return strings.Join(append(args, pipeIn), " "), nil
}
