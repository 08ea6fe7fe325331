package domain

import "strings"

// StubSuffix is appended to an identifier to name its stub file
const StubSuffix = ".Modelfile"

// DuplicatePolicy selects how stub generation treats identifiers that
// appeared on several catalog rows
type DuplicatePolicy string

const (
	// DuplicateLastWins writes one stub per identifier using the last row's path
	DuplicateLastWins DuplicatePolicy = "last"
	// DuplicateSuffix writes a stub per row, suffixing later duplicates with a counter
	DuplicateSuffix DuplicatePolicy = "suffix"
)

// ParseDuplicatePolicy parses a policy name, defaulting to DuplicateLastWins
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicateLastWins:
		return DuplicateLastWins, true
	case DuplicateSuffix:
		return DuplicateSuffix, true
	default:
		return DuplicateLastWins, false
	}
}

// StubFileName returns the file name of the stub for identifier
func StubFileName(identifier string) string {
	return identifier + StubSuffix
}

// RenderStub builds stub content: a FROM line and, when non-empty, the
// defaults block on its own line. Nothing is escaped.
func RenderStub(modelPath, defaults string) string {
	var b strings.Builder
	b.WriteString("FROM ")
	b.WriteString(modelPath)
	b.WriteString("\n")
	if defaults != "" {
		b.WriteString(defaults)
		b.WriteString("\n")
	}
	return b.String()
}
