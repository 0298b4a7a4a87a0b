package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// OutboxMessage is a domain event staged in the same transaction as the
// write that produced it. A poller publishes staged messages to Kafka so a
// broker outage never loses an event or blocks the commit.
type OutboxMessage struct {
	ID          string
	RequestID   string
	Aggregate   string
	AggregateID string
	EventType   string
	Topic       string
	Payload     []byte
	Status      string
	Attempts    int
	NextRetryAt time.Time
}

func (m OutboxMessage) Validate() error {
	if m.ID == "" {
		return errors.New("outbox id is required")
	}
	if m.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(m.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch m.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", m.Status)
	}
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Stage(ctx context.Context, msg OutboxMessage) error
	ListPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Stage(ctx context.Context, msg OutboxMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	query := `
        INSERT INTO outbox_messages (
            id, request_id, aggregate, aggregate_id, event_type, topic, payload, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		msg.ID, msg.RequestID, msg.Aggregate,
		msg.AggregateID, msg.EventType, msg.Topic, msg.Payload, msg.Status,
	)
	return err
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxMessage, error) {
	query := `
SELECT
	id::text,
	aggregate,
	aggregate_id::text,
	event_type,
	topic,
	payload,
	status,
	attempts,
	COALESCE(next_retry_at, created_at)
FROM outbox_messages
WHERE status IN ($1, $2)
	AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at ASC
LIMIT $3
`

	rows, err := r.db.QueryContext(ctx, query, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]OutboxMessage, 0, limit)
	for rows.Next() {
		var m OutboxMessage
		if err := rows.Scan(
			&m.ID,
			&m.Aggregate,
			&m.AggregateID,
			&m.EventType,
			&m.Topic,
			&m.Payload,
			&m.Status,
			&m.Attempts,
			&m.NextRetryAt,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return msgs, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	query := `
UPDATE outbox_messages
SET status = $2, sent_at = NOW(), last_error = NULL, updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed records the failure and schedules a retry with linear backoff,
// capped at ten intervals.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `
UPDATE outbox_messages
SET
	status = $2,
	attempts = attempts + 1,
	last_error = LEFT($3, 500),
	next_retry_at = NOW() + (LEAST(attempts + 1, 10) * INTERVAL '30 seconds'),
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason)
	return err
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
