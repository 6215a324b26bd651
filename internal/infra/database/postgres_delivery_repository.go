// internal/infra/database/postgres_delivery_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maxbond/telegram/internal/domain/notification"

	"github.com/lib/pq"
)

const defaultListLimit = 20

// ErrJournalSchemaMissing means EnsureSchema has not been run against the database.
var ErrJournalSchemaMissing = fmt.Errorf("telegram_deliveries table does not exist")

const deliverySchema = `CREATE TABLE IF NOT EXISTS telegram_deliveries (
    id          BIGSERIAL PRIMARY KEY,
    kind        TEXT        NOT NULL,
    endpoint    TEXT        NOT NULL,
    chat_id     TEXT        NOT NULL DEFAULT '',
    status      TEXT        NOT NULL,
    status_code INTEGER     NOT NULL DEFAULT 0,
    message_id  BIGINT,
    error_text  TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS telegram_deliveries_created_at_idx ON telegram_deliveries (created_at DESC);`

type PostgresDeliveryRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

// EnsureSchema creates the journal table when it is missing.
func (r *PostgresDeliveryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deliverySchema); err != nil {
		return fmt.Errorf("error creating delivery schema: %w", err)
	}
	return nil
}

func (r *PostgresDeliveryRepository) Create(ctx context.Context, d *notification.Delivery) error {
	query := `INSERT INTO telegram_deliveries (kind, endpoint, chat_id, status, status_code, message_id, error_text, created_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		d.Kind, d.Endpoint, d.ChatID, d.Status, d.StatusCode, d.MessageID, d.ErrorText, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		if isUndefinedTable(err) {
			return ErrJournalSchemaMissing
		}
		return fmt.Errorf("error creating delivery: %w", err)
	}
	return nil
}

func (r *PostgresDeliveryRepository) ListRecent(ctx context.Context, limit int) ([]*notification.Delivery, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT id, kind, endpoint, chat_id, status, status_code, message_id, error_text, created_at
               FROM telegram_deliveries
               ORDER BY created_at DESC, id DESC
               LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, ErrJournalSchemaMissing
		}
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*notification.Delivery
	for rows.Next() {
		d := &notification.Delivery{}
		if err := rows.Scan(&d.ID, &d.Kind, &d.Endpoint, &d.ChatID, &d.Status, &d.StatusCode, &d.MessageID, &d.ErrorText, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning delivery row: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery rows: %w", err)
	}
	return deliveries, nil
}

// isUndefinedTable reports SQLSTATE 42P01.
func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}
