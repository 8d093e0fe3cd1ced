package outbox

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres outbox repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save stores a new outbox message.
func (r *PostgresRepository) Save(ctx context.Context, msg *Message) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `
		INSERT INTO outbox_messages (
			event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)`,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.EventType,
		msg.RoutingKey,
		msg.Payload,
		msg.Metadata,
		msg.CreatedAt.UTC(),
	)
	return err
}

// SaveBatch stores multiple outbox messages.
func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished retrieves unpublished messages ordered by creation time.
func (r *PostgresRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, published_at, retry_count, last_error
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var msg Message
		err := rows.Scan(
			&msg.ID, &msg.EventID, &msg.AggregateType, &msg.AggregateID,
			&msg.EventType, &msg.RoutingKey, &msg.Payload, &msg.Metadata,
			&msg.CreatedAt, &msg.PublishedAt, &msg.RetryCount, &msg.LastError,
		)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}

// MarkPublished marks a message as successfully published.
func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET published_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	return err
}

// MarkFailed records a publish failure with error message.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = $1 WHERE id = $2`,
		errMsg, id)
	return err
}
