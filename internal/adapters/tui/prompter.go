// Package tui provides the interactive terminal prompter.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ggufcat/internal/adapters/tui/styles"
	"ggufcat/internal/application"
	"ggufcat/internal/ports"
)

// PromptKeyMap defines key bindings for a single-line prompt
type PromptKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultPromptKeys returns the default prompt key bindings
var DefaultPromptKeys = PromptKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// PromptModel asks one question and holds the answer once submitted
type PromptModel struct {
	Question  string
	Input     textinput.Model
	Keys      PromptKeyMap
	Done      bool
	Cancelled bool
}

// NewPromptModel creates a focused prompt for question
func NewPromptModel(question string) PromptModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "blank for default"
	input.CharLimit = 4096
	input.Focus()

	return PromptModel{
		Question: question,
		Input:    input,
		Keys:     DefaultPromptKeys,
	}
}

// Init returns the blink command for the input
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Submit):
			m.Done = true
			m.Input.Blur()
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Cancel):
			m.Cancelled = true
			m.Input.Blur()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View renders the question and input, or the final answer once done
func (m PromptModel) View() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(m.Question))

	if m.Done || m.Cancelled {
		b.WriteString(styles.Answer.Render(m.Answer()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.Input.View())
	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter"))
	b.WriteString(styles.HelpDesc.Render(" accept  "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" cancel"))
	return b.String()
}

// Answer returns the trimmed input
func (m PromptModel) Answer() string {
	return strings.TrimSpace(m.Input.Value())
}

// Prompter implements ports.Prompter with a bubbletea program per question
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// Ensure Prompter implements ports.Prompter
var _ ports.Prompter = (*Prompter)(nil)

// NewPrompter creates a terminal prompter reading keys from in and drawing to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Ask runs the prompt until the user submits or cancels
func (p *Prompter) Ask(question string) (string, error) {
	program := tea.NewProgram(NewPromptModel(question),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(PromptModel)
	if !ok || m.Cancelled || !m.Done {
		return "", application.ErrPromptCancelled
	}
	return m.Answer(), nil
}
