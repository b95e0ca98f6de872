package secret

import "context"

// Store holds provider credentials outside the core. Retrieve returns an
// empty string, not an error, when the key has never been stored.
type Store interface {
	Store(ctx context.Context, key, value string) error
	Retrieve(ctx context.Context, key string) (string, error)
	Erase(ctx context.Context, key string) error
}
