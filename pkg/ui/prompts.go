package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive answers from an input stream
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter over the given streams
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// NewStdinPrompter creates a prompter over stdin/stdout
func NewStdinPrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// IsInteractive reports whether stdin is attached to a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask prompts for a value and returns the trimmed answer, or the default
// when the answer is empty
func (p *Prompter) Ask(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s (default=%s): ", Cyan(label), defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", Cyan(label))
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF || line == "" {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// AskRequired prompts until a non-empty answer is given
func (p *Prompter) AskRequired(label string) (string, error) {
	for {
		answer, err := p.Ask(label, "")
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		PrintWarning("A value is required")
	}
}

// AskInt prompts for an integer, returning the default on an empty answer
func (p *Prompter) AskInt(label string, defaultValue int) (int, error) {
	answer, err := p.Ask(label, strconv.Itoa(defaultValue))
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", answer)
	}
	return value, nil
}
