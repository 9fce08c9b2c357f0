package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
)

// ReadUserInput and return on interrupt channel
func ReadUserInput() (string, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	inputChan := make(chan string)
	errChan := make(chan error)

	go func() {
		// Open /dev/tty for direct terminal access
		tty, err := os.Open("/dev/tty")
		if err != nil {
			errChan <- fmt.Errorf("cannot open terminal: %w", err)
			return
		}
		defer tty.Close()

		reader := bufio.NewReader(tty)
		userInput, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- userInput
	}()

	select {
	case <-sigChan:
		return "", ErrUserInitiatedExit
	case err := <-errChan:
		return "", fmt.Errorf("failed to read user input: %w", err)
	case userInput := <-inputChan:
		trimmedInput := strings.TrimSpace(userInput)
		quitters := []string{"q", "quit"}
		if slices.Contains(quitters, trimmedInput) {
			return "", ErrUserInitiatedExit
		}
		return trimmedInput, nil
	}
}

// NewMultilineScanner wraps r for ReadMultiline. The scanner must be
// reused across calls, since it buffers ahead of what has been consumed.
func NewMultilineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Study texts easily exceed the default 64KiB token size
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return scanner
}

// ReadMultiline reads lines until two consecutive empty lines, or EOF.
// Typing 'q' or 'quit' as the only content exits. This is the
// paste-your-study-text input used by the interactive loop.
func ReadMultiline(scanner *bufio.Scanner) (string, error) {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" && len(lines) > 0 && lines[len(lines)-1] == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	quitters := []string{"q", "quit", "exit"}
	if slices.Contains(quitters, text) {
		return "", ErrUserInitiatedExit
	}
	if text == "" && len(lines) == 0 {
		// EOF without any input also means the user is done
		return "", ErrUserInitiatedExit
	}
	if text == "" {
		return "", errors.New("no study text provided")
	}
	return text, nil
}
