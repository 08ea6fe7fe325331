package domain

import "fmt"

// Catalog file layout
const (
	CatalogFileName = "latest_GGUF_catalog.csv"
	ColumnID        = "ParentFolder"
	ColumnPath      = "AbsoluteGGUFPath"
)

// Entry is one cataloged model file
type Entry struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Path       string `json:"path" yaml:"path"` // Absolute path to the weight file
}

// Catalog is the ordered result of a collection run
type Catalog struct {
	Root    string  `json:"root" yaml:"root"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Conflict records an identifier that appeared on more than one catalog row.
// Kept is the path that won; Discarded lists the earlier paths in row order.
type Conflict struct {
	Identifier string   `json:"identifier" yaml:"identifier"`
	Kept       string   `json:"kept" yaml:"kept"`
	Discarded  []string `json:"discarded" yaml:"discarded"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: kept %s, discarded %d earlier path(s)", c.Identifier, c.Kept, len(c.Discarded))
}

// ModelIndex maps identifiers to model paths as loaded from a catalog file.
// Later rows win on duplicate identifiers; every collision is recorded.
type ModelIndex struct {
	Source string            `json:"source" yaml:"source"`
	Paths  map[string]string `json:"paths" yaml:"paths"`

	order     []string
	history   map[string][]string // every path seen per identifier, in row order
	conflicts map[string]bool
}

// NewModelIndex creates an empty index
func NewModelIndex(source string) *ModelIndex {
	return &ModelIndex{
		Source:    source,
		Paths:     make(map[string]string),
		history:   make(map[string][]string),
		conflicts: make(map[string]bool),
	}
}

// Add records a row. A repeated identifier replaces the earlier path.
func (m *ModelIndex) Add(identifier, path string) {
	if _, seen := m.Paths[identifier]; seen {
		m.conflicts[identifier] = true
	} else {
		m.order = append(m.order, identifier)
	}
	m.Paths[identifier] = path
	m.history[identifier] = append(m.history[identifier], path)
}

// Len returns the number of unique identifiers
func (m *ModelIndex) Len() int {
	return len(m.Paths)
}

// Identifiers returns the unique identifiers in first-appearance order
func (m *ModelIndex) Identifiers() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns the winning entry per identifier in first-appearance order
func (m *ModelIndex) Entries() []Entry {
	entries := make([]Entry, 0, len(m.order))
	for _, id := range m.order {
		entries = append(entries, Entry{Identifier: id, Path: m.Paths[id]})
	}
	return entries
}

// Conflicts returns every identifier that appeared more than once
func (m *ModelIndex) Conflicts() []Conflict {
	var out []Conflict
	for _, id := range m.order {
		if !m.conflicts[id] {
			continue
		}
		seen := m.history[id]
		discarded := make([]string, len(seen)-1)
		copy(discarded, seen[:len(seen)-1])
		out = append(out, Conflict{
			Identifier: id,
			Kept:       m.Paths[id],
			Discarded:  discarded,
		})
	}
	return out
}

// Disambiguated returns every row as its own entry. The first occurrence of an
// identifier keeps its name; later ones are suffixed -2, -3, ... in row order,
// skipping any suffix already taken by another identifier.
func (m *ModelIndex) Disambiguated() []Entry {
	taken := make(map[string]bool, len(m.order))
	for _, id := range m.order {
		taken[id] = true
	}

	var entries []Entry
	for _, id := range m.order {
		paths := m.history[id]
		entries = append(entries, Entry{Identifier: id, Path: paths[0]})
		n := 2
		for _, p := range paths[1:] {
			name := fmt.Sprintf("%s-%d", id, n)
			for taken[name] {
				n++
				name = fmt.Sprintf("%s-%d", id, n)
			}
			taken[name] = true
			entries = append(entries, Entry{Identifier: name, Path: p})
			n++
		}
	}
	return entries
}
