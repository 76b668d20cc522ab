package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spothop-backend/internal/features/media/models"
	"spothop-backend/internal/features/media/repository"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.MediaRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, item *models.MediaItem) error {
	query := `
		INSERT INTO media_items (id, spot_id, author_id, type, url, thumbnail_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		item.ID, item.SpotID, item.AuthorID, string(item.Type),
		item.URL, item.ThumbnailURL, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create media item: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.MediaItem, error) {
	query := `
		SELECT id, spot_id, author_id, type, url, thumbnail_url, created_at
		FROM media_items
		WHERE id = $1
	`
	var m models.MediaItem
	var mediaType string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.SpotID, &m.AuthorID, &mediaType, &m.URL, &m.ThumbnailURL, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media item: %w", err)
	}
	m.Type = models.MediaType(mediaType)
	return &m, nil
}

func (r *postgresRepository) ListBySpot(ctx context.Context, spotID string) ([]models.MediaItem, error) {
	query := `
		SELECT id, spot_id, author_id, type, url, thumbnail_url, created_at
		FROM media_items
		WHERE spot_id = $1
		ORDER BY created_at DESC
	`
	return r.queryMedia(ctx, query, spotID)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.MediaItem, error) {
	query := `
		SELECT id, spot_id, author_id, type, url, thumbnail_url, created_at
		FROM media_items
		WHERE author_id = $1
		ORDER BY created_at DESC
	`
	return r.queryMedia(ctx, query, authorID)
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrMediaNotFound
	}
	return nil
}

func (r *postgresRepository) queryMedia(ctx context.Context, query string, args ...interface{}) ([]models.MediaItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media items: %w", err)
	}
	defer rows.Close()

	items := make([]models.MediaItem, 0)
	for rows.Next() {
		var m models.MediaItem
		var mediaType string
		if err := rows.Scan(&m.ID, &m.SpotID, &m.AuthorID, &mediaType, &m.URL, &m.ThumbnailURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media item: %w", err)
		}
		m.Type = models.MediaType(mediaType)
		items = append(items, m)
	}
	return items, rows.Err()
}
