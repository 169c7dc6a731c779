package historyrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/ggyyuubb/wearther/internal/domain/history"
)

// PostgresRepository implements history.Repository using pgx and pgvector.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert implements history.Repository.
func (r *PostgresRepository) Insert(ctx context.Context, rec history.Record) error {
	weather, err := json.Marshal(rec.Weather)
	if err != nil {
		return err
	}
	candidate, err := json.Marshal(rec.Candidate)
	if err != nil {
		return err
	}
	outfit, err := json.Marshal(rec.Outfit)
	if err != nil {
		return err
	}
	var features any
	if len(rec.Features) > 0 {
		features = pgvector.NewVector(rec.Features)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO recommendation_history
			(id, user_id, location, day_index, weather, candidate, outfit, score, comment, features, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rec.ID, rec.UserID, rec.Location, rec.DayIndex, weather, candidate, outfit, rec.Score, rec.Comment, features, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListByUser implements history.Repository.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]history.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, location, day_index, weather, candidate, outfit, score, comment, features, created_at
		FROM recommendation_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []history.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListSameDay implements history.Repository.
func (r *PostgresRepository) ListSameDay(ctx context.Context, userID string, month time.Month, day, beforeYear int) ([]history.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, location, day_index, weather, candidate, outfit, score, comment, features, created_at
		FROM recommendation_history
		WHERE user_id = $1
			AND EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC') = $2
			AND EXTRACT(DAY FROM created_at AT TIME ZONE 'UTC') = $3
			AND EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC') < $4
		ORDER BY created_at DESC
	`, userID, int(month), day, beforeYear)
	if err != nil {
		return nil, fmt.Errorf("query same-day history: %w", err)
	}
	defer rows.Close()

	var out []history.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete implements history.Repository.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM recommendation_history WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete history: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (history.Record, error) {
	var (
		rec                        history.Record
		weather, candidate, outfit []byte
		features                   *pgvector.Vector
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Location, &rec.DayIndex, &weather, &candidate, &outfit,
		&rec.Score, &rec.Comment, &features, &rec.CreatedAt); err != nil {
		return history.Record{}, fmt.Errorf("scan history: %w", err)
	}
	if err := json.Unmarshal(weather, &rec.Weather); err != nil {
		return history.Record{}, fmt.Errorf("decode history weather: %w", err)
	}
	if err := json.Unmarshal(candidate, &rec.Candidate); err != nil {
		return history.Record{}, fmt.Errorf("decode history candidate: %w", err)
	}
	if err := json.Unmarshal(outfit, &rec.Outfit); err != nil {
		return history.Record{}, fmt.Errorf("decode history outfit: %w", err)
	}
	if features != nil {
		rec.Features = features.Slice()
	}
	return rec, nil
}

var _ history.Repository = (*PostgresRepository)(nil)
