// Package csvstore persists model catalogs as two-column CSV files.
package csvstore

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store implements ports.CatalogStore
type Store struct{}

// Ensure Store implements CatalogStore
var _ ports.CatalogStore = (*Store)(nil)

// NewStore creates a new CSV catalog store
func NewStore() *Store {
	return &Store{}
}

// Save writes entries to outputDir/latest_GGUF_catalog.csv, replacing any
// previous catalog
func (s *Store) Save(entries []domain.Entry, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, domain.CatalogFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create catalog: %w", err)
	}

	if err := Encode(f, entries); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close catalog: %w", err)
	}

	return path, nil
}

// Encode writes the header and one row per entry
func Encode(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{domain.ColumnID, domain.ColumnPath}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Identifier, e.Path}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads a catalog file. Rows are applied in order so a repeated
// identifier keeps the last path; collisions are recorded on the index.
func (s *Store) Load(path string) (*domain.ModelIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &application.CatalogError{Path: path, Reason: "file does not exist", Err: application.ErrCatalogNotFound}
		}
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode parses catalog rows from r. source is used for the index and errors.
func Decode(r io.Reader, source string) (*domain.ModelIndex, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, malformed(source, 0, "file is empty")
	}
	if err != nil {
		return nil, malformed(source, 1, err.Error())
	}

	idCol, pathCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case domain.ColumnID:
			idCol = i
		case domain.ColumnPath:
			pathCol = i
		}
	}
	if idCol < 0 || pathCol < 0 {
		return nil, malformed(source, 1, fmt.Sprintf("expected header %s,%s, got %s",
			domain.ColumnID, domain.ColumnPath, strings.Join(header, ",")))
	}

	index := domain.NewModelIndex(source)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, malformed(source, line, err.Error())
		}
		if err := domain.CheckIdentifier(record[idCol]); err != nil {
			line, _ := cr.FieldPos(idCol)
			return nil, malformed(source, line, err.Error())
		}
		index.Add(record[idCol], record[pathCol])
	}

	return index, nil
}

func malformed(source string, line int, reason string) error {
	return &application.CatalogError{
		Path:   source,
		Line:   line,
		Reason: reason,
		Err:    application.ErrMalformedCatalog,
	}
}
