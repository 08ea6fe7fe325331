// Package prompt provides non-interactive and line-based prompters.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"ggufcat/internal/application"
	"ggufcat/internal/ports"
)

// LinePrompter reads one line per question from a reader
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure LinePrompter implements Prompter
var _ ports.Prompter = (*LinePrompter)(nil)

// NewLinePrompter creates a prompter that writes questions to out and reads answers from in
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question and returns the answer without its line terminator.
// A final line without a newline is still returned; a closed input with
// nothing left cancels the prompt.
func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", application.ErrPromptCancelled
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
