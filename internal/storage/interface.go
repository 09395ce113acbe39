package storage

import (
	"context"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

// Storage defines the interface for keeper persistence
// Records are opaque text blobs keyed by team name; writes are last-write-wins
type Storage interface {
	// Keeper record operations
	SaveKeeperRecord(ctx context.Context, team string, blob string) error
	GetKeeperRecord(ctx context.Context, team string) (string, error)

	// Password log operations (append-only, never read back by the app)
	AppendPasswordLog(ctx context.Context, entry model.PasswordLogEntry) error
}
