package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
)

// Store keeps one row per auction in a single key/value table with the
// serialized record in a JSON column.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the auctions table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS auctions (
            auction_key VARCHAR(191) PRIMARY KEY,
            record JSON NOT NULL
        )
    `
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (*domain.Record, error) {
	query := `SELECT record FROM auctions WHERE auction_key = ?`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record %q: %w", key, err)
	}
	return &rec, nil
}

func (s *Store) Set(ctx context.Context, key string, rec *domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}

	query := `
        INSERT INTO auctions (auction_key, record) VALUES (?, ?)
        ON DUPLICATE KEY UPDATE record = VALUES(record)
    `
	_, err = s.db.ExecContext(ctx, query, key, data)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM auctions WHERE auction_key = ?`
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	query := `SELECT COUNT(*) FROM auctions WHERE auction_key = ?`

	var n int
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Record, error) {
	query := `SELECT auction_key, record FROM auctions`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.Record
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}

		var rec domain.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode record %q: %w", key, err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
