package csvstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
)

func TestSave_WritesHeaderAndRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	entries := []domain.Entry{
		{Identifier: "lmstudio-foo", Path: "/m/Foo-GGUF/foo.gguf"},
		{Identifier: "lmstudio-bar", Path: "/m/Bar/bar.gguf"},
	}

	path, err := NewStore().Save(entries, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "latest_GGUF_catalog.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"ParentFolder,AbsoluteGGUFPath\n"+
			"lmstudio-foo,/m/Foo-GGUF/foo.gguf\n"+
			"lmstudio-bar,/m/Bar/bar.gguf\n",
		string(content))
}

func TestSave_Idempotent(t *testing.T) {
	dir := t.TempDir()
	entries := []domain.Entry{
		{Identifier: "lmstudio-a", Path: "/x/a, with comma/a.gguf"},
		{Identifier: "lmstudio-b", Path: `/x/"quoted"/b.gguf`},
	}
	store := NewStore()

	path, err := store.Save(entries, dir)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = store.Save(entries, dir)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSave_OverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()

	_, err := store.Save([]domain.Entry{{Identifier: "lmstudio-old", Path: "/old.gguf"}}, dir)
	require.NoError(t, err)
	path, err := store.Save([]domain.Entry{{Identifier: "lmstudio-new", Path: "/new.gguf"}}, dir)
	require.NoError(t, err)

	index, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lmstudio-new": "/new.gguf"}, index.Paths)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := []domain.Entry{
		{Identifier: "lmstudio-foo", Path: "/1/Foo-GGUF/foo.gguf"},
		{Identifier: "lmstudio-bar", Path: "/1/Bar/bar.gguf"},
		{Identifier: "lmstudio-foo", Path: "/2/foo-gguf/foo.gguf"},
		{Identifier: "lmstudio-odd", Path: "/odd, \"path\"\n/odd.gguf"},
	}
	store := NewStore()

	path, err := store.Save(entries, dir)
	require.NoError(t, err)
	index, err := store.Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, index.Source)
	assert.Equal(t, map[string]string{
		"lmstudio-foo": "/2/foo-gguf/foo.gguf",
		"lmstudio-bar": "/1/Bar/bar.gguf",
		"lmstudio-odd": "/odd, \"path\"\n/odd.gguf",
	}, index.Paths)
	assert.Equal(t, []string{"lmstudio-foo", "lmstudio-bar", "lmstudio-odd"}, index.Identifiers())

	conflicts := index.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "lmstudio-foo", conflicts[0].Identifier)
	assert.Equal(t, []string{"/1/Foo-GGUF/foo.gguf"}, conflicts[0].Discarded)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := NewStore().Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, application.ErrCatalogNotFound))
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty file", "", 0},
		{"wrong header", "name,path\nlmstudio-a,/a.gguf\n", 1},
		{"single column header", "ParentFolder\nlmstudio-a\n", 1},
		{"ragged row", "ParentFolder,AbsoluteGGUFPath\nlmstudio-a,/a.gguf\nlmstudio-b\n", 3},
		{"bad quoting", "ParentFolder,AbsoluteGGUFPath\nlmstudio-a,\"/a\"b.gguf\n", 2},
		{"identifier escapes output dir", "ParentFolder,AbsoluteGGUFPath\nlmstudio-a,/a.gguf\n../escaped,/x.gguf\n", 3},
		{"identifier with separator", "ParentFolder,AbsoluteGGUFPath\nsub/model,/x.gguf\n", 2},
		{"dot-dot identifier", "ParentFolder,AbsoluteGGUFPath\n..,/x.gguf\n", 2},
		{"empty identifier", "ParentFolder,AbsoluteGGUFPath\n,/x.gguf\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), "test.csv")
			require.Error(t, err)
			assert.True(t, errors.Is(err, application.ErrMalformedCatalog), "got %v", err)

			var catErr *application.CatalogError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, "test.csv", catErr.Path)
			assert.Equal(t, tt.line, catErr.Line)
		})
	}
}

func TestDecode_HeaderVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"byte order mark", "\xEF\xBB\xBFParentFolder,AbsoluteGGUFPath\nlmstudio-a,/a.gguf\n"},
		{"swapped columns", "AbsoluteGGUFPath,ParentFolder\n/a.gguf,lmstudio-a\n"},
		{"extra index column", ",ParentFolder,AbsoluteGGUFPath\n0,lmstudio-a,/a.gguf\n"},
		{"crlf line endings", "ParentFolder,AbsoluteGGUFPath\r\nlmstudio-a,/a.gguf\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := Decode(strings.NewReader(tt.input), "test.csv")
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"lmstudio-a": "/a.gguf"}, index.Paths)
		})
	}
}

func TestDecode_HeaderOnly(t *testing.T) {
	index, err := Decode(strings.NewReader("ParentFolder,AbsoluteGGUFPath\n"), "test.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}
