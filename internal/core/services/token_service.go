package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenClaims is the signed payload of both token kinds. The "type" claim
// is what keeps an access token from being replayed as a refresh token:
// both kinds share a secret, so the verifier enforces an exact match.
type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService creates and verifies HMAC-SHA256 signed tokens carrying a
// user id and a type discriminator. It knows nothing about HTTP or storage.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken issues a short-lived token authorizing API calls. It
// carries the user id as subject and the email as an extra claim.
func (s *TokenService) GenerateAccessToken(userID int, email string) (string, error) {
	return s.generate(userID, email, tokenTypeAccess, s.accessTTL)
}

// GenerateRefreshToken issues a long-lived token exchanged for a new pair.
func (s *TokenService) GenerateRefreshToken(userID int) (string, error) {
	return s.generate(userID, "", tokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) generate(userID int, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// Unique jti keeps two tokens minted for the same user within
			// the same second from being the same string.
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyAccessToken checks signature, issuer, expiry and the "access" type
// claim, and returns the embedded user id.
func (s *TokenService) VerifyAccessToken(token string) (int, error) {
	return s.verify(token, tokenTypeAccess)
}

// VerifyRefreshToken is the refresh-side counterpart of VerifyAccessToken.
// An access token presented here fails the type check.
func (s *TokenService) VerifyRefreshToken(token string) (int, error) {
	return s.verify(token, tokenTypeRefresh)
}

func (s *TokenService) verify(token, wantType string) (int, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}

	if claims.TokenType != wantType {
		return 0, errors.New("token type mismatch")
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, errors.New("token subject is not a user id")
	}
	return userID, nil
}
