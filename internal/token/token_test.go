package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate_IsWellFormed(t *testing.T) {
	tok, err := Generate()
	require.NoError(t, err)

	require.Len(t, tok, 32)
	require.True(t, IsWellFormed(tok))
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := Generate()
		require.NoError(t, err)
		require.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}

func TestIsWellFormed_RejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"abc",
		strings.Repeat("a", 31),
		strings.Repeat("a", 33),
		strings.ToUpper(strings.Repeat("ab12", 8)),
		strings.Repeat("g", 32),
		strings.Repeat("a", 16) + " " + strings.Repeat("a", 15),
	}
	for _, c := range cases {
		require.False(t, IsWellFormed(c), "expected %q to be rejected", c)
	}

	require.True(t, IsWellFormed(strings.Repeat("ab12", 8)))
}
