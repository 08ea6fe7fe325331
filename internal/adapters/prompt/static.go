package prompt

import (
	"ggufcat/internal/ports"
)

// StaticPrompter answers from a fixed list, then with blanks (accepting
// every offered default). Used for headless runs.
type StaticPrompter struct {
	answers []string
	asked   []string
}

// Ensure StaticPrompter implements Prompter
var _ ports.Prompter = (*StaticPrompter)(nil)

// NewStaticPrompter creates a prompter that replays answers in order
func NewStaticPrompter(answers ...string) *StaticPrompter {
	return &StaticPrompter{answers: answers}
}

// Ask returns the next canned answer
func (p *StaticPrompter) Ask(question string) (string, error) {
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Asked returns every question seen so far
func (p *StaticPrompter) Asked() []string {
	return p.asked
}
