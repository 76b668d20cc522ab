package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spothop-backend/internal/features/contest/models"
	"spothop-backend/internal/features/contest/repository"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.ContestRepository {
	return &postgresRepository{pool: pool}
}

const contestColumns = `id, created_by, title, description, starts_at, ends_at,
	status, voting_type, criteria, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, contest *models.Contest) error {
	criteria, err := json.Marshal(contest.Criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}
	query := `
		INSERT INTO contests (id, created_by, title, description, starts_at, ends_at,
			status, voting_type, criteria, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.pool.Exec(ctx, query,
		contest.ID, contest.CreatedBy, contest.Title, contest.Description,
		contest.StartsAt, contest.EndsAt, string(contest.Status), string(contest.VotingType),
		criteria, contest.CreatedAt, contest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contest: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE id = $1`

	contest, err := scanContest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	return contest, nil
}

func (r *postgresRepository) Update(ctx context.Context, contest *models.Contest) error {
	criteria, err := json.Marshal(contest.Criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}
	query := `
		UPDATE contests
		SET title = $2, description = $3, starts_at = $4, ends_at = $5,
			status = $6, voting_type = $7, criteria = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		contest.ID, contest.Title, contest.Description, contest.StartsAt, contest.EndsAt,
		string(contest.Status), string(contest.VotingType), criteria, contest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update contest: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrContestNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM contests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrContestNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, status models.ContestStatus, limit, offset int) ([]models.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests`
	args := make([]interface{}, 0)
	argNum := 1

	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argNum)
		args = append(args, string(status))
		argNum++
	}

	query += " ORDER BY starts_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
		argNum++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, offset)
	}

	return r.queryContests(ctx, query, args...)
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]models.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests
		WHERE status IN ('active', 'voting')
		ORDER BY starts_at DESC`
	return r.queryContests(ctx, query)
}

func (r *postgresRepository) CreateEntry(ctx context.Context, entry *models.Entry) error {
	query := `
		INSERT INTO contest_entries (id, contest_id, user_id, spot_id, media_id, media_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.ContestID, entry.UserID, entry.SpotID,
		entry.MediaID, entry.MediaType, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetEntry(ctx context.Context, entryID string) (*models.Entry, error) {
	query := `
		SELECT id, contest_id, user_id, spot_id, media_id, media_type, created_at
		FROM contest_entries
		WHERE id = $1
	`
	var e models.Entry
	err := r.pool.QueryRow(ctx, query, entryID).Scan(
		&e.ID, &e.ContestID, &e.UserID, &e.SpotID, &e.MediaID, &e.MediaType, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &e, nil
}

func (r *postgresRepository) DeleteEntry(ctx context.Context, entryID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM contest_entries WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repository.ErrEntryNotFound
	}
	return nil
}

func (r *postgresRepository) ListEntries(ctx context.Context, contestID string) ([]models.Entry, error) {
	query := `
		SELECT id, contest_id, user_id, spot_id, media_id, media_type, created_at
		FROM contest_entries
		WHERE contest_id = $1
		ORDER BY created_at ASC
	`
	return r.queryEntries(ctx, query, contestID)
}

func (r *postgresRepository) ListUserEntries(ctx context.Context, contestID, userID string) ([]models.Entry, error) {
	query := `
		SELECT id, contest_id, user_id, spot_id, media_id, media_type, created_at
		FROM contest_entries
		WHERE contest_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`
	return r.queryEntries(ctx, query, contestID, userID)
}

func (r *postgresRepository) CountUserEntries(ctx context.Context, contestID, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM contest_entries WHERE contest_id = $1 AND user_id = $2`
	if err := r.pool.QueryRow(ctx, query, contestID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) HasEntryForSpot(ctx context.Context, contestID, userID, spotID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM contest_entries WHERE contest_id = $1 AND user_id = $2 AND spot_id = $3
	)`
	if err := r.pool.QueryRow(ctx, query, contestID, userID, spotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check entry: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreateVote(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO contest_votes (contest_id, entry_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, vote.ContestID, vote.EntryID, vote.VoterID, vote.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation on (contest_id, voter_id).
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateVote
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

func (r *postgresRepository) HasVoted(ctx context.Context, contestID, voterID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM contest_votes WHERE contest_id = $1 AND voter_id = $2)`
	if err := r.pool.QueryRow(ctx, query, contestID, voterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListEntriesWithVotes(ctx context.Context, contestID string) ([]models.Entry, error) {
	query := `
		SELECT e.id, e.contest_id, e.user_id, e.spot_id, e.media_id, e.media_type,
			e.created_at, COUNT(v.entry_id) AS votes
		FROM contest_entries e
		LEFT JOIN contest_votes v ON v.entry_id = e.id
		WHERE e.contest_id = $1
		GROUP BY e.id, e.contest_id, e.user_id, e.spot_id, e.media_id, e.media_type, e.created_at
		ORDER BY votes DESC, e.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries with votes: %w", err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.ContestID, &e.UserID, &e.SpotID, &e.MediaID,
			&e.MediaType, &e.CreatedAt, &e.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresRepository) queryContests(ctx context.Context, query string, args ...interface{}) ([]models.Contest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	defer rows.Close()

	contests := make([]models.Contest, 0)
	for rows.Next() {
		contest, err := scanContest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		contests = append(contests, *contest)
	}
	return contests, rows.Err()
}

func (r *postgresRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]models.Entry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.ContestID, &e.UserID, &e.SpotID,
			&e.MediaID, &e.MediaType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanContest(row pgx.Row) (*models.Contest, error) {
	var c models.Contest
	var status, votingType string
	var criteria []byte
	err := row.Scan(
		&c.ID, &c.CreatedBy, &c.Title, &c.Description, &c.StartsAt, &c.EndsAt,
		&status, &votingType, &criteria, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = models.ContestStatus(status)
	c.VotingType = models.VotingType(votingType)
	if len(criteria) > 0 {
		if err := json.Unmarshal(criteria, &c.Criteria); err != nil {
			return nil, fmt.Errorf("failed to unmarshal criteria: %w", err)
		}
	}
	return &c, nil
}
