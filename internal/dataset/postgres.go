package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/masanorih/address2zip/internal/models"
)

// PostgresSource fetches the postal dataset from the postal_entries
// table populated by cmd/importer.
type PostgresSource struct {
	db *pgxpool.Pool
}

// NewPostgresSource creates a new Postgres-backed dataset source
func NewPostgresSource(db *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: db}
}

// FetchRows loads the full dataset snapshot. Ordering by id reproduces
// the CSV insertion order the resolver's tie-break depends on.
func (s *PostgresSource) FetchRows(ctx context.Context) ([]models.Row, error) {
	sql := `
		SELECT
			postal_code,
			prefecture,
			city,
			district
		FROM postal_entries
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to query postal entries: %w", err)
	}
	defer rows.Close()

	var result []models.Row
	for rows.Next() {
		var r models.Row
		err := rows.Scan(
			&r.PostalCode,
			&r.Prefecture,
			&r.City,
			&r.District,
		)
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to scan postal entry: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset: error iterating rows: %w", err)
	}

	return result, nil
}
