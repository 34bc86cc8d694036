package ports

import (
	"context"

	"github.com/crew-app/crew/internal/core/domain"
)

// RefreshTokenRepository persists the mapping from opaque refresh-token
// string to owning user id. Tokens are high-entropy signed strings, so the
// unique constraint on the token column is never expected to fire.
type RefreshTokenRepository interface {
	Save(ctx context.Context, userID int, token string) error
	FindUserID(ctx context.Context, token string) (int, bool, error)

	// Consume atomically deletes the record for token and returns the
	// owning user id. Under concurrent redemption of the same token,
	// exactly one caller observes ok == true.
	Consume(ctx context.Context, token string) (int, bool, error)

	// Delete removes a single token; it is a no-op if the token is absent.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser revokes every refresh token owned by a user.
	DeleteAllForUser(ctx context.Context, userID int) error
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID int) error
}

// AccessTokenVerifier is the part of the token codec the HTTP middleware
// needs: it checks signature, issuer, expiry and the "access" type claim
// and returns the embedded user id.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (int, error)
}
