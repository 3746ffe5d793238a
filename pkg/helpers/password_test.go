package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	old := BcryptCost
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = old })

	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "password123"))
	assert.False(t, CompareHashAndPassword(hash, "password124"))
	assert.False(t, NeedsRehash(hash))

	BcryptCost = bcrypt.MinCost + 1
	assert.True(t, NeedsRehash(hash))
	assert.True(t, NeedsRehash("not-a-hash"))
}
