// Package homedir expands a leading ~ or ~user in paths.
package homedir

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Expander resolves home directories. Lookup returns the home of a named user.
type Expander struct {
	Home   func() (string, error)
	Lookup func(name string) (string, error)
}

// Default uses the current user's home and the system user database
func Default() Expander {
	return Expander{Home: os.UserHomeDir, Lookup: lookupUser}
}

// Expand expands path with Default
func Expand(path string) (string, error) {
	return Default().Expand(path)
}

// Expand replaces a leading ~ with the current home and ~name with the home
// of user name. An unknown user leaves the path unchanged.
func (e Expander) Expand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	name, rest := path[1:], ""
	if i := strings.IndexAny(name, "/"+string(filepath.Separator)); i >= 0 {
		name, rest = name[:i], name[i+1:]
	}

	if name == "" {
		home, err := e.Home()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, rest), nil
	}

	home, err := e.Lookup(name)
	if err != nil || home == "" {
		return path, nil
	}
	return filepath.Join(home, rest), nil
}

func lookupUser(name string) (string, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}
