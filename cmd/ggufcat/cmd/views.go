package cmd

import (
	"strconv"
	"time"

	"ggufcat/internal/domain"
	"ggufcat/internal/output"
	"ggufcat/internal/ports"
)

// entryList renders scan results
type entryList []domain.Entry

func (l entryList) Table() output.Data {
	data := output.Data{Headers: []string{"Identifier", "Path"}}
	for _, e := range l {
		data.Rows = append(data.Rows, []string{e.Identifier, e.Path})
	}
	return data
}

// catalogView renders a loaded catalog with its duplicates
type catalogView struct {
	Source    string            `json:"source" yaml:"source"`
	Entries   []domain.Entry    `json:"entries" yaml:"entries"`
	Conflicts []domain.Conflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

func newCatalogView(index *domain.ModelIndex) catalogView {
	return catalogView{
		Source:    index.Source,
		Entries:   index.Entries(),
		Conflicts: index.Conflicts(),
	}
}

func (v catalogView) Table() output.Data {
	discarded := make(map[string]int, len(v.Conflicts))
	for _, c := range v.Conflicts {
		discarded[c.Identifier] = len(c.Discarded)
	}

	data := output.Data{Headers: []string{"Identifier", "Path", "Discarded"}}
	for _, e := range v.Entries {
		data.Rows = append(data.Rows, []string{e.Identifier, e.Path, strconv.Itoa(discarded[e.Identifier])})
	}
	return data
}

// runList renders recorded runs
type runList []ports.Run

func (l runList) Table() output.Data {
	data := output.Data{Headers: []string{"Run", "Root", "Catalog", "Entries", "Created"}}
	for _, r := range l {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Root,
			r.CatalogPath,
			strconv.Itoa(r.EntryCount),
			r.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return data
}
