package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crew-app/crew/internal/core/ports"
)

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) ports.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Save(ctx context.Context, userID int, token string) error {
	query := `INSERT INTO refresh_tokens (user_id, token) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, userID, token)
	return err
}

func (r *RefreshTokenRepository) FindUserID(ctx context.Context, token string) (int, bool, error) {
	query := `SELECT user_id FROM refresh_tokens WHERE token = $1`
	var userID int
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return userID, true, nil
}

// Consume deletes the record and returns the owning user id in one
// statement. Postgres serializes the row-level delete, so two concurrent
// redemptions of the same token cannot both see the row.
func (r *RefreshTokenRepository) Consume(ctx context.Context, token string) (int, bool, error) {
	query := `DELETE FROM refresh_tokens WHERE token = $1 RETURNING user_id`
	var userID int
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return userID, true, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

func (r *RefreshTokenRepository) DeleteAllForUser(ctx context.Context, userID int) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
