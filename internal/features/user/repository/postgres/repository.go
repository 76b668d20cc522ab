package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spothop-backend/internal/features/user/models"
	"spothop-backend/internal/features/user/repository"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &postgresRepository{pool: pool}
}

const userColumns = `id, email, display_name, rider_type, avatar_url, bio, is_banned, created_at, updated_at`

func (r *postgresRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, display_name, rider_type, avatar_url, bio, is_banned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.DisplayName, user.RiderType, user.AvatarURL,
		user.Bio, user.IsBanned, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET display_name = $2, rider_type = $3, avatar_url = $4, bio = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		user.ID, user.DisplayName, user.RiderType, user.AvatarURL, user.Bio, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) AddFollow(ctx context.Context, followerID, followedID string) error {
	query := `
		INSERT INTO user_follows (follower_id, followed_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, followerID, followedID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 = foreign_key_violation: the followed user does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("failed to add follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveFollow(ctx context.Context, followerID, followedID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to remove follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListFollowers(ctx context.Context, userID string) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.display_name, u.rider_type, u.avatar_url, u.bio,
			u.is_banned, u.created_at, u.updated_at
		FROM users u
		JOIN user_follows f ON f.follower_id = u.id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
	`
	return r.queryUsers(ctx, query, userID)
}

func (r *postgresRepository) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.display_name, u.rider_type, u.avatar_url, u.bio,
			u.is_banned, u.created_at, u.updated_at
		FROM users u
		JOIN user_follows f ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	return r.queryUsers(ctx, query, userID)
}

func (r *postgresRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_follows WHERE follower_id = $1 AND followed_id = $2)`
	if err := r.pool.QueryRow(ctx, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.RiderType, &u.AvatarURL, &u.Bio,
		&u.IsBanned, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
