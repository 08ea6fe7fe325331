package ports

// Prompter asks the user for a line of text. An empty answer means
// "accept the offered default".
type Prompter interface {
	Ask(question string) (string, error)
}
