package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec("access-secret", "refresh-secret", time.Hour, 30*24*time.Hour)
	require.NoError(t, err)
	return c
}

// signRaw builds a token with arbitrary claim timestamps, bypassing
// Issue, so expiry and issued-at policy can be exercised directly.
func signRaw(t *testing.T, secret []byte, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestNewTokenCodecRequiresSecrets(t *testing.T) {
	_, err := NewTokenCodec("", "refresh", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenCodec("access", "", time.Hour, time.Hour)
	assert.Error(t, err)
}

func TestNewTokenCodecDefaultsDurations(t *testing.T) {
	c, err := NewTokenCodec("a", "r", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTTL, c.TTL(AccessToken))
	assert.Equal(t, DefaultRefreshTTL, c.TTL(RefreshToken))
}

func TestIssueAndVerify(t *testing.T) {
	c := testCodec(t)

	for _, kind := range []TokenKind{AccessToken, RefreshToken} {
		token, err := c.Issue(7, "a@x.com", "Ann", kind)
		require.NoError(t, err)

		claims, err := c.Verify(token, kind)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.Subject)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, "Ann", claims.Name)
		assert.NotEmpty(t, claims.TokenID)
		assert.WithinDuration(t, time.Now().Add(c.TTL(kind)), claims.ExpiresAt.Time, 5*time.Second)
	}
}

func TestIssueUniquePerCall(t *testing.T) {
	c := testCodec(t)

	a, err := c.Issue(1, "a@x.com", "Ann", RefreshToken)
	require.NoError(t, err)
	b, err := c.Issue(1, "a@x.com", "Ann", RefreshToken)
	require.NoError(t, err)
	// same claims in the same second must still produce distinct tokens,
	// otherwise rotation could hand back the token it just retired
	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	c := testCodec(t)

	access, err := c.Issue(1, "a@x.com", "Ann", AccessToken)
	require.NoError(t, err)

	_, err = c.Verify(access, RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	c := testCodec(t)

	_, err := c.Verify("definitely.not.ajwt", AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = c.Verify("", AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	c := testCodec(t)

	token := signRaw(t, []byte("some-other-secret"), &Claims{
		Subject:   1,
		Email:     "a@x.com",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	_, err := c.Verify(token, AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	c := testCodec(t)

	token := signRaw(t, c.refreshSecret, &Claims{
		Subject:   9,
		Email:     "a@x.com",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	claims, err := c.Verify(token, RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
	// decoded claims still come back so sign-out can read the subject
	require.NotNil(t, claims)
	assert.Equal(t, uint(9), claims.Subject)
}

func TestVerifyNotYetValidToken(t *testing.T) {
	c := testCodec(t)

	token := signRaw(t, c.accessSecret, &Claims{
		Subject:   1,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
	})
	_, err := c.Verify(token, AccessToken)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestVerifyFutureIssuedAt(t *testing.T) {
	c := testCodec(t)

	token := signRaw(t, c.accessSecret, &Claims{
		Subject:   1,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
	})
	_, err := c.Verify(token, AccessToken)
	assert.ErrorIs(t, err, ErrTokenIssuedAtInvalid)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	c := testCodec(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Subject:   1,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Verify(token, AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
