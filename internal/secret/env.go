package secret

import (
	"context"
	"os"
)

// EnvStore reads credentials from process environment variables. Store and
// Erase only affect the current process; the daemon uses this when no
// external secret backend is configured.
type EnvStore struct{}

var _ Store = EnvStore{}

func (EnvStore) Store(_ context.Context, key, value string) error {
	return os.Setenv(key, value)
}

func (EnvStore) Retrieve(_ context.Context, key string) (string, error) {
	return os.Getenv(key), nil
}

func (EnvStore) Erase(_ context.Context, key string) error {
	return os.Unsetenv(key)
}
