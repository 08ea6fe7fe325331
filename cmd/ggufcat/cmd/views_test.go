package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
)

func TestCatalogView_Table(t *testing.T) {
	index := domain.NewModelIndex("/c.csv")
	index.Add("lmstudio-a", "/m/a1.gguf")
	index.Add("lmstudio-b", "/m/b.gguf")
	index.Add("lmstudio-a", "/m/a2.gguf")

	data := newCatalogView(index).Table()

	assert.Equal(t, []string{"Identifier", "Path", "Discarded"}, data.Headers)
	assert.Equal(t, [][]string{
		{"lmstudio-a", "/m/a2.gguf", "1"},
		{"lmstudio-b", "/m/b.gguf", "0"},
	}, data.Rows)
}

func TestEntryList_Table(t *testing.T) {
	data := entryList{{Identifier: "lmstudio-foo", Path: "/m/Foo-GGUF/foo.gguf"}}.Table()

	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"lmstudio-foo", "/m/Foo-GGUF/foo.gguf"}, data.Rows[0])
}

func TestRunList_Table(t *testing.T) {
	runs := runList{{ID: 7, Root: "/m", CatalogPath: "/o/c.csv", EntryCount: 3, CreatedAt: time.Unix(0, 0)}}

	data := runs.Table()

	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"7", "/m", "/o/c.csv", "3"}, data.Rows[0][:4])
}

func TestGraceful(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	assert.NoError(t, graceful(c, &application.EmptyCatalogError{Root: "/m"}))
	assert.Contains(t, out.String(), "No .gguf files found in the specified folder.")

	assert.NoError(t, graceful(c, application.ErrPromptCancelled))
	assert.Contains(t, out.String(), "Cancelled.")

	boom := errors.New("boom")
	assert.ErrorIs(t, graceful(c, boom), boom)
	assert.NoError(t, graceful(c, nil))
}
