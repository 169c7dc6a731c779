package wardrobestore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ggyyuubb/wearther/internal/domain/wardrobe"
)

// PostgresStore implements wardrobe.Store using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListRecords returns the raw closet rows for a user, oldest first.
func (s *PostgresStore) ListRecords(ctx context.Context, userID string) ([]wardrobe.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT type, category, colors, material, length_fit, url
		FROM closet_items
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query closet items: %w", err)
	}
	defer rows.Close()

	var out []wardrobe.Record
	for rows.Next() {
		var (
			rec       wardrobe.Record
			material  *string
			lengthFit *string
			url       *string
		)
		if err := rows.Scan(&rec.Type, &rec.Category, &rec.Colors, &material, &lengthFit, &url); err != nil {
			return nil, fmt.Errorf("scan closet item: %w", err)
		}
		rec.Material = deref(material)
		rec.LengthFit = deref(lengthFit)
		rec.URL = deref(url)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

var _ wardrobe.Store = (*PostgresStore)(nil)
