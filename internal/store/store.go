// Package store is the persistence boundary for the engine: named JSON
// blobs behind a small key-value interface. Gameplay never depends on a
// write succeeding; callers treat failures as log-and-continue.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Well-known blob keys.
const (
	KeyStats      = "stats"
	KeySettings   = "settings"
	KeyTreasury   = "treasury"
	KeyDifficulty = "difficulty"
)

// ErrNotFound is returned by Get for keys that were never written.
var ErrNotFound = errors.New("store: key not found")

// Blobs reads and writes whole JSON documents by key. Writes replace
// the full value; there are no partial updates and no cross-key
// transactions.
type Blobs interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}
