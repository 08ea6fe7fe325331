package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ModelExtension is the file extension of cataloged weight files (matched case-insensitively)
	ModelExtension = ".gguf"

	// IdentifierPrefix is prepended to every derived identifier
	IdentifierPrefix = "lmstudio-"

	// folderSuffix is stripped from parent folder names before normalizing
	folderSuffix = "-gguf"
)

// IsModelFile reports whether name carries the model extension
func IsModelFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ModelExtension)
}

// DeriveIdentifier normalizes the name of a model's containing folder.
//
//	"Foo-GGUF" -> "lmstudio-foo"
//	"Bar"      -> "lmstudio-bar"
func DeriveIdentifier(folderName string) string {
	name := folderName
	if strings.HasSuffix(strings.ToLower(name), folderSuffix) {
		name = name[:len(name)-len(folderSuffix)]
	}
	return IdentifierPrefix + strings.ToLower(name)
}

// IdentifierForPath derives the identifier of a model file from its immediate parent directory
func IdentifierForPath(path string) string {
	return DeriveIdentifier(filepath.Base(filepath.Dir(path)))
}

// CheckIdentifier reports identifiers that cannot name a stub file inside the
// output directory: empty, "." or "..", or containing a path separator.
func CheckIdentifier(id string) error {
	switch {
	case id == "":
		return errors.New("identifier is empty")
	case id == "." || id == "..":
		return fmt.Errorf("identifier %q is not a file name", id)
	case strings.ContainsRune(id, '/') || strings.ContainsRune(id, filepath.Separator):
		return fmt.Errorf("identifier %q contains a path separator", id)
	}
	return nil
}
