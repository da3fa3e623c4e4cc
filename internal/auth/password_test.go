package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, auth.CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, auth.CheckPassword(hash, "hunter23"), auth.ErrPasswordMismatch)
	assert.ErrorIs(t, auth.CheckPassword("not-a-hash", "hunter22"), auth.ErrPasswordMismatch)
}

func TestRandomPassword(t *testing.T) {
	a, err := auth.RandomPassword(12)
	require.NoError(t, err)

	b, err := auth.RandomPassword(12)
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}
