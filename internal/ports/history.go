package ports

import (
	"time"

	"ggufcat/internal/domain"
)

// Run is one recorded collection run
type Run struct {
	ID          int64     `json:"id" yaml:"id"`
	Root        string    `json:"root" yaml:"root"`
	CatalogPath string    `json:"catalog_path" yaml:"catalog_path"`
	EntryCount  int       `json:"entry_count" yaml:"entry_count"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// RunHistory keeps a record of saved catalogs
type RunHistory interface {
	Open(dbPath string) error
	Close() error

	Record(catalog *domain.Catalog, catalogPath string) (*Run, error)
	ListRuns(limit int) ([]Run, error)
	RunEntries(runID int64) ([]domain.Entry, error)
}
