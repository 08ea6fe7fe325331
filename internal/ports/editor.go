package ports

import "context"

// Editor opens a file for hand editing and returns once the editor exits
type Editor interface {
	Open(ctx context.Context, path string) error
}
