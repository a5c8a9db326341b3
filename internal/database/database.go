package database

import (
	"context"
	"fmt"

	"github.com/LastWeekNextDay/CamMask-host/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on startup. CREATE IF NOT EXISTS keeps restarts cheap.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	google_id     TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	photo_url     TEXT NOT NULL DEFAULT '',
	can_comment   BOOLEAN NOT NULL DEFAULT TRUE,
	can_upload    BOOLEAN NOT NULL DEFAULT TRUE,
	creation_date TIMESTAMPTZ NOT NULL,
	last_access   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS masks (
	id                 BIGINT PRIMARY KEY,
	mask_url           TEXT NOT NULL,
	name               TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	images             TEXT[] NOT NULL DEFAULT '{}',
	tags               TEXT[] NOT NULL DEFAULT '{}',
	uploader_google_id TEXT NOT NULL REFERENCES users(google_id),
	average_rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
	ratings_count      INTEGER NOT NULL DEFAULT 0,
	uploaded_on        TIMESTAMPTZ NOT NULL,
	last_accessed_on   TIMESTAMPTZ NOT NULL,
	is_removed         BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS ratings (
	mask_id   BIGINT NOT NULL REFERENCES masks(id),
	google_id TEXT NOT NULL REFERENCES users(google_id),
	rating    DOUBLE PRECISION NOT NULL,
	posted_on TIMESTAMPTZ NOT NULL,
	UNIQUE (mask_id, google_id)
);

CREATE TABLE IF NOT EXISTS comments (
	id        UUID PRIMARY KEY,
	mask_id   BIGINT NOT NULL REFERENCES masks(id),
	google_id TEXT NOT NULL REFERENCES users(google_id),
	comment   TEXT NOT NULL,
	posted_on TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS comments_mask_posted_idx ON comments (mask_id, posted_on DESC);

CREATE TABLE IF NOT EXISTS reports (
	id                 UUID PRIMARY KEY,
	reported_item_type TEXT NOT NULL,
	reported_item_id   TEXT NOT NULL,
	reporter_google_id TEXT NOT NULL,
	reason             TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	reported_on        TIMESTAMPTZ NOT NULL
);
`

// Connect opens a pgx pool, verifies the connection and applies the schema.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return pool, nil
}
