package secret_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampaper/dreampaper/internal/secret"
)

func TestEnvStore(t *testing.T) {
	ctx := context.Background()
	s := secret.EnvStore{}
	const key = "DREAMPAPER_TEST_CREDENTIAL"

	t.Setenv(key, "")

	v, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, v, "unset key yields empty, not an error")

	require.NoError(t, s.Store(ctx, key, "sk-test"))
	v, err = s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", v)

	require.NoError(t, s.Erase(ctx, key))
	v, err = s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, v)
}
