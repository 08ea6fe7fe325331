package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "outputDir" -> "output directory")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"root":        "root directory",
		"outputDir":   "output directory",
		"catalogPath": "catalog path",
		"scanDir":     "scan directory",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateDuplicatePolicy checks that a duplicate policy name is known
func ValidateDuplicatePolicy(fieldName, value string) error {
	if _, ok := ParseDuplicatePolicy(value); !ok {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown duplicate policy %q (expected last or suffix)", value),
		}
	}
	return nil
}
