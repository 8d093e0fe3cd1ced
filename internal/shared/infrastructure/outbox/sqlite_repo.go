package outbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite outbox repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save stores a new outbox message.
func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO outbox_messages (
			event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, retry_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID.String(),
		msg.EventType,
		msg.RoutingKey,
		string(msg.Payload),
		string(msg.Metadata),
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// SaveBatch stores multiple outbox messages. The caller is expected to run
// this inside a unit of work so the batch is atomic with the aggregate save.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished retrieves unpublished messages ordered by creation time.
func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, published_at, retry_count, last_error
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// MarkPublished marks a message as successfully published.
func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE outbox_messages SET published_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	return err
}

// MarkFailed records a publish failure with error message.
func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = ? WHERE id = ?`,
		errMsg, id)
	return err
}

func scanMessage(rows *sql.Rows) (*Message, error) {
	var (
		msg          Message
		eventID      string
		aggregateID  string
		payload      string
		metadata     string
		createdAt    string
		publishedAt  sql.NullString
		lastError    sql.NullString
	)

	err := rows.Scan(
		&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.EventType,
		&msg.RoutingKey, &payload, &metadata, &createdAt, &publishedAt,
		&msg.RetryCount, &lastError,
	)
	if err != nil {
		return nil, err
	}

	if msg.EventID, err = uuid.Parse(eventID); err != nil {
		return nil, err
	}
	if msg.AggregateID, err = uuid.Parse(aggregateID); err != nil {
		return nil, err
	}
	msg.Payload = []byte(payload)
	msg.Metadata = []byte(metadata)
	if msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, publishedAt.String)
		if err != nil {
			return nil, err
		}
		msg.PublishedAt = &t
	}
	if lastError.Valid {
		msg.LastError = &lastError.String
	}

	return &msg, nil
}
