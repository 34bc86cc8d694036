package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crew-app/crew/internal/core/domain"
	"github.com/crew-app/crew/internal/core/ports"
)

// AuthService implements registration, login and the refresh-token
// protocol. It composes the token codec, the bcrypt hasher and the two
// repositories; all durable state lives behind the repository interfaces,
// so the service itself is stateless and safe for concurrent use.
type AuthService struct {
	users         ports.UserRepository
	refreshTokens ports.RefreshTokenRepository
	tokens        *TokenService
	logger        *slog.Logger
}

func NewAuthService(users ports.UserRepository, refreshTokens ports.RefreshTokenRepository, tokens *TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		logger:        logger,
	}
}

// ValidateRegistration is a pure gate run before any persistence. The email
// check is intentionally weak: it only requires "@", "." and a minimal
// length, not RFC compliance.
func (s *AuthService) ValidateRegistration(firstName, lastName, email, password string) error {
	if isBlank(firstName) || isBlank(lastName) || isBlank(email) || isBlank(password) {
		return &domain.ValidationError{Message: "all fields must be non-empty"}
	}
	if !isValidEmail(email) {
		return &domain.ValidationError{Message: "invalid email format"}
	}
	if len(password) < 8 {
		return &domain.ValidationError{Message: "password must be at least 8 characters long"}
	}
	return nil
}

// CheckEmailAvailability is an advisory fast path. The unique constraint on
// the users table is the real guarantee against a concurrent registration
// slipping in between this check and the insert.
func (s *AuthService) CheckEmailAvailability(ctx context.Context, email string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return &domain.ConflictError{Message: "email is already registered"}
	}
	return nil
}

// Register validates the input, stores a new user with a hashed password
// and issues an initial token pair.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, domain.TokenPair, error) {
	if err := s.ValidateRegistration(input.FirstName, input.LastName, input.Email, input.Password); err != nil {
		return nil, domain.TokenPair{}, err
	}
	if err := s.CheckEmailAvailability(ctx, input.Email); err != nil {
		return nil, domain.TokenPair{}, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// Authenticate verifies email and password. Unknown email and wrong
// password fail with the identical generic message so callers cannot
// enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		return nil, &domain.AuthenticationError{Message: "email or password is incorrect"}
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, &domain.AuthenticationError{Message: "email or password is incorrect"}
	}
	return user, nil
}

// Login authenticates the credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// IssueTokenPair mints an access and a refresh token and persists the
// refresh token. If the save fails the freshly minted tokens are never
// returned, so no orphaned valid refresh token reaches a client.
func (s *AuthService) IssueTokenPair(ctx context.Context, user *domain.User) (domain.TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.refreshTokens.Save(ctx, user.ID, refreshToken); err != nil {
		return domain.TokenPair{}, fmt.Errorf("save refresh token: %w", err)
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh redeems a refresh token for a new pair. The signature is checked
// before touching storage so forged tokens cost no round-trip, and the
// stored record is consumed (atomically deleted) before the new pair is
// issued: a crash in between logs the user out instead of leaving two valid
// tokens for one login. Consumption is what makes refresh tokens single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return domain.TokenPair{}, &domain.AuthenticationError{Message: "invalid refresh token"}
	}

	// The store is the authoritative expiry/revocation check: a
	// cryptographically valid but already consumed token is rejected here.
	storedUserID, ok, err := s.refreshTokens.Consume(ctx, refreshToken)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("consume refresh token: %w", err)
	}
	if !ok {
		return domain.TokenPair{}, &domain.AuthenticationError{Message: "refresh token not found or expired"}
	}

	if userID != storedUserID {
		return domain.TokenPair{}, &domain.AuthenticationError{Message: "token mismatch"}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("find user by id: %w", err)
	}
	if user == nil {
		return domain.TokenPair{}, &domain.AuthenticationError{Message: "user not found"}
	}

	return s.IssueTokenPair(ctx, user)
}

// Logout revokes a single refresh token. Deleting an unknown token is a
// no-op, so logout never fails on an already-expired session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokens.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// LogoutAll revokes every refresh token owned by the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID int) error {
	if err := s.refreshTokens.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh tokens for user: %w", err)
	}
	s.logger.Info("all sessions revoked", "user_id", userID)
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".") && len(email) >= 5
}
