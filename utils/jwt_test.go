package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", 7, "leo", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "leo", claims.Username)
}

func TestParseTokenRejects(t *testing.T) {
	token, err := GenerateToken("secret", 7, "leo", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", 7, "leo", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.Error(t, err)

	_, err = ParseToken("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = GenerateToken("", 7, "leo", time.Hour)
	assert.Error(t, err)
}

func TestTokensAreDistinct(t *testing.T) {
	a, err := GenerateToken("secret", 7, "leo", time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken("secret", 7, "leo", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenBlacklistInMemory(t *testing.T) {
	bl := NewTokenBlacklist(nil)
	assert.False(t, bl.IsRevoked("a"))

	bl.Revoke("a", time.Now().Add(time.Hour))
	assert.True(t, bl.IsRevoked("a"))

	// already expired tokens are not stored
	bl.Revoke("b", time.Now().Add(-time.Second))
	assert.False(t, bl.IsRevoked("b"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", ""))

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("  hello  "))
	assert.Equal(t, "", Sanitize("<script>alert(1)</script>"))
	assert.Equal(t, "<b>bold</b>", Sanitize("<b>bold</b>"))
}

func TestNilCacheNeverHits(t *testing.T) {
	var c *Cache
	var out map[string]int
	c.SetJSON("k", map[string]int{"a": 1}, time.Minute)
	assert.False(t, c.GetJSON("k", &out))
	c.InvalidateByPrefix("k")

	empty := NewCache(nil)
	empty.SetJSON("k", 1, 0)
	assert.False(t, empty.GetJSON("k", &out))
}
