package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/foodgram-server/internal/domain"
)

// Cheap parameters keep the suite fast.
var testParams = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(testParams)

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"), encoded)

	assert.True(t, h.Verify(encoded, "correct horse battery staple"))
	assert.False(t, h.Verify(encoded, "wrong"))
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	h := NewPasswordHasher(testParams)

	a, err := h.Hash("secret-pass")
	require.NoError(t, err)
	b, err := h.Hash("secret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_VerifyUsesStoredParams(t *testing.T) {
	encoded, err := NewPasswordHasher(testParams).Hash("secret-pass")
	require.NoError(t, err)

	other := NewPasswordHasher(Argon2Params{Memory: 2048, Iterations: 2, Parallelism: 2, SaltLength: 8, KeyLength: 16})
	assert.True(t, other.Verify(encoded, "secret-pass"))
}

func TestPasswordHasher_Rejects(t *testing.T) {
	h := NewPasswordHasher(testParams)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = h.Hash(strings.Repeat("x", maxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	for _, bad := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$AAAA$AAAA", "$argon2id$v=1$m=1,t=1,p=1$AAAA$AAAA"} {
		assert.False(t, h.Verify(bad, "x"), bad)
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	ts, err := NewTokenService(key, time.Hour)
	require.NoError(t, err)
	return ts
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)
	user := &domain.User{ID: "usr-1", Email: "cook@example.com"}

	token, err := ts.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.Equal(t, "cook@example.com", claims.Email)
	assert.True(t, strings.HasPrefix(claims.TokenID, "tok-"))
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expiration, time.Minute)
}

func TestTokenService_Expired(t *testing.T) {
	ts := newTestTokenService(t)
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := ts.GenerateAccessToken(&domain.User{ID: "usr-1"})
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_WrongKey(t *testing.T) {
	token, err := newTestTokenService(t).GenerateAccessToken(&domain.User{ID: "usr-1"})
	require.NoError(t, err)

	_, err = newTestTokenService(t).VerifyAccessToken(token)
	assert.Error(t, err)

	_, err = newTestTokenService(t).VerifyAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService(make([]byte, 16), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(make([]byte, keyLength), 0)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey_Persists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, first, keyLength)

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrGenerateKey_RejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte("zz"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}
