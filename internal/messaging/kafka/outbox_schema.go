package kafka

import (
	"context"
	"database/sql"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             uuid PRIMARY KEY,
	request_id     text,
	aggregate_type varchar(50)  NOT NULL,
	aggregate_id   text         NOT NULL,
	event_type     varchar(100) NOT NULL,
	topic          varchar(255) NOT NULL,
	payload        jsonb        NOT NULL,
	status         varchar(20)  NOT NULL DEFAULT 'pending',
	retry_count    int          NOT NULL DEFAULT 0,
	error_message  text,
	next_retry_at  timestamptz,
	processed_at   timestamptz,
	created_at     timestamptz  NOT NULL DEFAULT NOW(),
	updated_at     timestamptz  NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at);
`

// Migrate creates the outbox table when it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, outboxSchema)
	return err
}
