package application

import "ggufcat/internal/domain"

// Re-export domain types for use by adapters
type (
	Entry           = domain.Entry
	Catalog         = domain.Catalog
	ModelIndex      = domain.ModelIndex
	Conflict        = domain.Conflict
	DuplicatePolicy = domain.DuplicatePolicy
)

const (
	DuplicateLastWins = domain.DuplicateLastWins
	DuplicateSuffix   = domain.DuplicateSuffix
)

// ParseDuplicatePolicy parses a duplicate policy name
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	return domain.ParseDuplicatePolicy(s)
}
