package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User is the identity every query is scoped to. The server never stores
// credentials; it only records who signed in.
type User struct {
	ID          int    `json:"-"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// SignIn finds or creates a user by email and issues a fresh session token.
// Last-seen and display name refresh on each call.
func (db *DB) SignIn(ctx context.Context, email, displayName string) (User, string, error) {
	u := User{Email: email}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, display_name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id, display_name
	`, email, displayName).Scan(&u.ID, &u.DisplayName)
	if err != nil {
		return User{}, "", fmt.Errorf("upserting user: %w", err)
	}

	token := uuid.NewString()
	if _, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (token, user_id) VALUES ($1, $2)`, token, u.ID); err != nil {
		return User{}, "", fmt.Errorf("creating session: %w", err)
	}
	return u, token, nil
}

// UserByToken resolves a session token to its user.
func (db *DB) UserByToken(ctx context.Context, token string) (User, error) {
	var u User
	err := db.Pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.display_name
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = $1`, token).Scan(&u.ID, &u.Email, &u.DisplayName)
	if err == pgx.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("resolving session: %w", err)
	}
	return u, nil
}

// SignOut revokes a session token. Revoking an unknown token is not an error.
func (db *DB) SignOut(ctx context.Context, token string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// UpdateProfile changes a user's display name.
func (db *DB) UpdateProfile(ctx context.Context, userID int, displayName string) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET display_name = $1 WHERE id = $2`, displayName, userID)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
