package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-at-least-32-characters-long"
	testIssuer = "http://localhost:8080"
)

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, testIssuer, 15*time.Minute, 30*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.GenerateAccessToken(7, "jane@x.co")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.GenerateRefreshToken(42)
	require.NoError(t, err)

	userID, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	svc := newTestTokenService()

	accessToken, err := svc.GenerateAccessToken(7, "jane@x.co")
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(accessToken)
	assert.Error(t, err, "access token must not verify as refresh token")

	_, err = svc.VerifyAccessToken(refreshToken)
	assert.Error(t, err, "refresh token must not verify as access token")
}

func TestTamperedSignatureRejected(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService("another-secret-also-32-characters-xx", testIssuer, 15*time.Minute, 30*24*time.Hour)

	// Well-formed claims, wrong key.
	token, err := other.GenerateRefreshToken(7)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(token)
	assert.Error(t, err)
}

func TestWrongIssuerRejected(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService(testSecret, "http://evil.example", 15*time.Minute, 30*24*time.Hour)

	token, err := other.GenerateAccessToken(7, "jane@x.co")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	expired := NewTokenService(testSecret, testIssuer, -time.Minute, -time.Minute)

	accessToken, err := expired.GenerateAccessToken(7, "jane@x.co")
	require.NoError(t, err)

	verifier := newTestTokenService()
	_, err = verifier.VerifyAccessToken(accessToken)
	assert.Error(t, err)
}

func TestNonIntegerSubjectRejected(t *testing.T) {
	now := time.Now()
	claims := tokenClaims{
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "not-a-number",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestTokenService()
	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestTokenService()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyAccessToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestSubjectIsStringEncodedUserID(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.GenerateAccessToken(123, "jane@x.co")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = new(jwt.Parser).ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, strconv.Itoa(123), claims["sub"])
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, "jane@x.co", claims["email"])
	assert.Equal(t, testIssuer, claims["iss"])
}
