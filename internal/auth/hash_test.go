package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	// Known vectors from the digest definition.
	require.Equal(t, "n7qt9z", HashPassword("password123"))
	require.Equal(t, "22ci", HashPassword("abc"))
	require.Equal(t, "0", HashPassword(""))

	// Deterministic: same input, same token.
	require.Equal(t, HashPassword("hunter22"), HashPassword("hunter22"))
}

func TestComparePasswords(t *testing.T) {
	token := HashPassword("messi10")

	require.True(t, ComparePasswords(token, "messi10"))
	require.False(t, ComparePasswords(token, "messi11"))
}
