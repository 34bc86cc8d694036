package memory

import (
	"context"
	"sync"

	"github.com/crew-app/crew/internal/core/ports"
)

type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]int
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: map[string]int{}}
}

var _ ports.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

func (r *RefreshTokenRepository) Save(_ context.Context, userID int, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *RefreshTokenRepository) FindUserID(_ context.Context, token string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.tokens[token]
	return userID, ok, nil
}

// Consume looks up and deletes under one lock, matching the row-level
// atomicity of the Postgres DELETE ... RETURNING.
func (r *RefreshTokenRepository) Consume(_ context.Context, token string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.tokens[token]
	if ok {
		delete(r.tokens, token)
	}
	return userID, ok, nil
}

func (r *RefreshTokenRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *RefreshTokenRepository) DeleteAllForUser(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, owner := range r.tokens {
		if owner == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

// Len reports the number of stored tokens.
func (r *RefreshTokenRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
