package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, CheckPassword("s3cret-pass", hash))
	require.False(t, CheckPassword("wrong-pass", hash))
}

func TestHashPassword_GeneratorError(t *testing.T) {
	orig := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })

	_, err := HashPassword("x")
	require.Error(t, err)
}

func TestGenerateRandomToken(t *testing.T) {
	tok, err := GenerateRandomToken(8)
	require.NoError(t, err)
	require.Len(t, tok, 16) // 8 bytes = 16 hex chars

	other, err := GenerateRandomToken(8)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestGenerateRandomToken_ReaderError(t *testing.T) {
	orig := randomRead
	randomRead = func([]byte) (int, error) { return 0, errors.New("no entropy") }
	t.Cleanup(func() { randomRead = orig })

	_, err := GenerateRandomToken(8)
	require.Error(t, err)
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		require.Len(t, pw, TempPasswordLength)
		for _, r := range pw {
			require.True(t, strings.ContainsRune(tempPasswordAlphabet, r), "unexpected char %q", r)
		}
		seen[pw] = true
	}
	require.Greater(t, len(seen), 1, "temp passwords should not repeat")
}

func TestGenerateRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.NotContains(t, tok, "+")
	require.NotContains(t, tok, "/")

	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}
