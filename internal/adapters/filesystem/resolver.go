package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ggufcat/internal/application"
	"ggufcat/internal/homedir"
	"ggufcat/internal/ports"
)

// Resolver implements ports.PathResolver against the local filesystem
type Resolver struct {
	home homedir.Expander
}

// Ensure Resolver implements PathResolver
var _ ports.PathResolver = (*Resolver)(nil)

// NewResolver creates a resolver that expands ~ and ~user to home directories
func NewResolver() *Resolver {
	return &Resolver{home: homedir.Default()}
}

// Resolve returns the absolute, symlink-resolved form of input, or of
// defaultPath when input is blank. Paths that do not exist yet are allowed
// unless req says otherwise.
func (r *Resolver) Resolve(input, defaultPath string, req ports.PathRequirement) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		raw = defaultPath
	}

	expanded, err := r.home.Expand(raw)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to make %s absolute: %w", expanded, err)
	}

	resolved := resolveExisting(abs)

	switch req {
	case ports.RequireDir:
		info, err := os.Stat(resolved)
		if err != nil || !info.IsDir() {
			return "", &application.PathError{Path: resolved, Err: application.ErrInvalidDirectory}
		}
	case ports.RequireFile:
		info, err := os.Stat(resolved)
		if err != nil || info.IsDir() {
			return "", &application.PathError{Path: resolved, Err: application.ErrCatalogNotFound}
		}
	}

	return resolved, nil
}

// resolveExisting evaluates symlinks on the longest existing prefix of path
// and re-attaches the missing tail
func resolveExisting(path string) string {
	var tail []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			parts := append([]string{resolved}, tail...)
			return filepath.Join(parts...)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return path
		}

		parent := filepath.Dir(current)
		if parent == current {
			return path
		}
		tail = append([]string{filepath.Base(current)}, tail...)
		current = parent
	}
}
