package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spothop-backend/internal/features/spot/models"
	"spothop-backend/internal/features/spot/repository"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.SpotRepository {
	return &postgresRepository{pool: pool}
}

const spotColumns = `id, created_by, name, description, spot_types, difficulty,
	is_lit, kickout_risk, latitude, longitude, thumbnail_url, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, spot *models.Spot) error {
	query := `
		INSERT INTO spots (id, created_by, name, description, spot_types, difficulty,
			is_lit, kickout_risk, latitude, longitude, thumbnail_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		spot.ID, spot.CreatedBy, spot.Name, spot.Description, spot.SpotTypes,
		spot.Difficulty, spot.IsLit, spot.KickoutRisk, spot.Latitude, spot.Longitude,
		spot.ThumbnailURL, spot.CreatedAt, spot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = $1`

	spot, err := scanSpot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	return spot, nil
}

func (r *postgresRepository) Update(ctx context.Context, spot *models.Spot) error {
	query := `
		UPDATE spots
		SET name = $2, description = $3, spot_types = $4, difficulty = $5,
			is_lit = $6, kickout_risk = $7, latitude = $8, longitude = $9,
			thumbnail_url = $10, updated_at = $11
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		spot.ID, spot.Name, spot.Description, spot.SpotTypes, spot.Difficulty,
		spot.IsLit, spot.KickoutRisk, spot.Latitude, spot.Longitude,
		spot.ThumbnailURL, spot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update spot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrSpotNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrSpotNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, filter models.SpotFilter) ([]models.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE 1=1`
	args := make([]interface{}, 0)
	argNum := 1

	if filter.SpotType != "" {
		query += fmt.Sprintf(" AND $%d = ANY(spot_types)", argNum)
		args = append(args, filter.SpotType)
		argNum++
	}
	if filter.Difficulty != "" {
		query += fmt.Sprintf(" AND difficulty = $%d", argNum)
		args = append(args, filter.Difficulty)
		argNum++
	}
	if filter.IsLit != nil {
		query += fmt.Sprintf(" AND is_lit = $%d", argNum)
		args = append(args, *filter.IsLit)
		argNum++
	}
	if filter.MaxKickoutRisk > 0 {
		query += fmt.Sprintf(" AND kickout_risk > 0 AND kickout_risk <= $%d", argNum)
		args = append(args, filter.MaxKickoutRisk)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	return r.querySpots(ctx, query, args...)
}

func (r *postgresRepository) ListByCreator(ctx context.Context, userID string) ([]models.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE created_by = $1 ORDER BY created_at DESC`
	return r.querySpots(ctx, query, userID)
}

func (r *postgresRepository) AddFavorite(ctx context.Context, userID, spotID string) error {
	query := `
		INSERT INTO spot_favorites (user_id, spot_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, spot_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, userID, spotID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 = foreign_key_violation: the spot does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return repository.ErrSpotNotFound
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveFavorite(ctx context.Context, userID, spotID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM spot_favorites WHERE user_id = $1 AND spot_id = $2`, userID, spotID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListFavorites(ctx context.Context, userID string) ([]models.Spot, error) {
	query := `
		SELECT s.id, s.created_by, s.name, s.description, s.spot_types, s.difficulty,
			s.is_lit, s.kickout_risk, s.latitude, s.longitude, s.thumbnail_url,
			s.created_at, s.updated_at
		FROM spots s
		JOIN spot_favorites f ON f.spot_id = s.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	return r.querySpots(ctx, query, userID)
}

func (r *postgresRepository) IsFavorite(ctx context.Context, userID, spotID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM spot_favorites WHERE user_id = $1 AND spot_id = $2)`
	if err := r.pool.QueryRow(ctx, query, userID, spotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO spot_comments (id, spot_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.SpotID, comment.AuthorID, comment.Body, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT id, spot_id, author_id, body, created_at FROM spot_comments WHERE id = $1`

	var c models.Comment
	err := r.pool.QueryRow(ctx, query, commentID).Scan(
		&c.ID, &c.SpotID, &c.AuthorID, &c.Body, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) ListComments(ctx context.Context, spotID string) ([]models.Comment, error) {
	query := `SELECT id, spot_id, author_id, body, created_at FROM spot_comments WHERE spot_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.SpotID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postgresRepository) DeleteComment(ctx context.Context, commentID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM spot_comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}
	return nil
}

func (r *postgresRepository) querySpots(ctx context.Context, query string, args ...interface{}) ([]models.Spot, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer rows.Close()

	spots := make([]models.Spot, 0)
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spots = append(spots, *spot)
	}
	return spots, rows.Err()
}

func scanSpot(row pgx.Row) (*models.Spot, error) {
	var s models.Spot
	err := row.Scan(
		&s.ID, &s.CreatedBy, &s.Name, &s.Description, &s.SpotTypes, &s.Difficulty,
		&s.IsLit, &s.KickoutRisk, &s.Latitude, &s.Longitude, &s.ThumbnailURL,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
