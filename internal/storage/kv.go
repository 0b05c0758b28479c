package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownBackend = errors.New("storage: unknown backend")
	ErrClosed         = errors.New("storage: store closed")
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// KV is a string-keyed, string-valued store with synchronous get/set
// semantics. The last write for a key wins.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

func Open(backend, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, "":
		if strings.TrimSpace(path) == "" {
			return nil, errors.New("storage: sqlite path is required")
		}
		return OpenSQLite(path)
	case BackendFile:
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func IsKnownBackend(backend string) bool {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}
