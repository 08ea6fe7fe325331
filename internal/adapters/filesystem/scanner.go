package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// Scanner implements ports.ModelScanner by walking the filesystem
type Scanner struct {
	log zerolog.Logger
}

// Ensure Scanner implements ModelScanner
var _ ports.ModelScanner = (*Scanner)(nil)

// NewScanner creates a new filesystem scanner
func NewScanner(log zerolog.Logger) *Scanner {
	return &Scanner{log: log}
}

// Scan returns one entry per model file under root in walk order.
// Unreadable subdirectories are skipped; symlinked directories are not followed.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.Entry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	var entries []domain.Entry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == absRoot {
				return err
			}
			s.log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !domain.IsModelFile(d.Name()) {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}

		entries = append(entries, domain.Entry{
			Identifier: domain.IdentifierForPath(path),
			Path:       path,
		})
		s.log.Debug().Str("path", path).Msg("Found model file")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", absRoot, err)
	}

	return entries, nil
}

// isRegularFile accepts regular files and symlinks that point at one
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
