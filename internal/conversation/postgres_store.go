// README: Postgres-backed conversation store.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voyago/internal/agent"
)

// PostgresStore persists conversations in a single-row-per-conversation
// table:
//
//	CREATE TABLE IF NOT EXISTS conversations (
//	    id         TEXT PRIMARY KEY,
//	    messages   JSONB NOT NULL DEFAULT '[]',
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, id string) ([]agent.Message, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `SELECT messages FROM conversations WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	var msgs []agent.Message
	if err := json.Unmarshal(payload, &msgs); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return msgs, nil
}

func (s *PostgresStore) Set(ctx context.Context, id string, messages []agent.Message) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", id, err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO conversations (id, messages, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET
			messages = EXCLUDED.messages,
			updated_at = now()
	`, id, payload)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	return err
}
