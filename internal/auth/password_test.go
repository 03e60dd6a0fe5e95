package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(4) // minimum cost keeps the test fast

	digest, err := hasher.Hash("motdepasse1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "motdepasse1", digest)

	assert.True(t, hasher.Verify("motdepasse1", digest))
	assert.False(t, hasher.Verify("motdepasse2", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestPasswordHasher_SaltedDigestsDiffer(t *testing.T) {
	hasher := NewPasswordHasher(4)

	first, err := hasher.Hash("motdepasse1")
	require.NoError(t, err)
	second, err := hasher.Hash("motdepasse1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("motdepasse1", first))
	assert.True(t, hasher.Verify("motdepasse1", second))
}

func TestPasswordHasher_CostOutOfRangeFallsBack(t *testing.T) {
	hasher := NewPasswordHasher(99)

	digest, err := hasher.Hash("motdepasse1")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("motdepasse1", digest))
}
