// Package securestore implements the secure credential store holding the
// session token and the serialized user record: an encrypted SQLite vault for
// real builds and an in-memory store for tests and ephemeral runs.
package securestore

import "context"

// Keys used by the auth store. These are the only two entries the wallet
// persists.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// Store is an encrypted key-value store for session credentials.
//
// Get returns (nil, nil) for an absent key. Read failures are expected to be
// treated as "absent" by callers (fail open to unauthenticated); write and
// delete failures are logged and swallowed by callers, never surfaced to the
// presentation layer.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
