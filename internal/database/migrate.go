package database

import "fmt"

// migrations are applied in order on startup. Statements are idempotent
// so a restart against an existing database is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS mumineen (
		its_id     TEXT PRIMARY KEY,
		eits_id    TEXT,
		hof_its_id TEXT REFERENCES mumineen(its_id) ON DELETE SET NULL,
		full_name  TEXT NOT NULL,
		gender     TEXT NOT NULL CHECK (gender IN ('male', 'female')),
		age        INTEGER,
		mobile     TEXT,
		country    TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mumineen_hof_its_id ON mumineen(hof_its_id)`,

	`CREATE TABLE IF NOT EXISTS miqaats (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		start_date  DATE NOT NULL,
		end_date    DATE NOT NULL,
		description TEXT,
		status      TEXT NOT NULL CHECK (status IN ('upcoming', 'ongoing', 'completed', 'cancelled')),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS miqaat_events (
		id          BIGSERIAL PRIMARY KEY,
		miqaat_id   BIGINT NOT NULL REFERENCES miqaats(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		datetime    TIMESTAMPTZ NOT NULL,
		location    TEXT NOT NULL,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_miqaat_events_miqaat_id ON miqaat_events(miqaat_id)`,

	`CREATE TABLE IF NOT EXISTS miqaat_registrations (
		id                BIGSERIAL PRIMARY KEY,
		miqaat_id         BIGINT NOT NULL REFERENCES miqaats(id) ON DELETE CASCADE,
		its_id            TEXT NOT NULL REFERENCES mumineen(its_id) ON DELETE CASCADE,
		registration_date DATE NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (miqaat_id, its_id)
	)`,

	`CREATE TABLE IF NOT EXISTS operators (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin', 'scanner')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS operator_sessions (
		id               UUID PRIMARY KEY,
		operator_id      UUID NOT NULL REFERENCES operators(id) ON DELETE CASCADE,
		ip_address       TEXT,
		device_type      TEXT,
		os               TEXT,
		browser          TEXT,
		last_activity_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS arrival_scans (
		id          BIGSERIAL PRIMARY KEY,
		its_id      TEXT NOT NULL REFERENCES mumineen(its_id),
		operator_id UUID NOT NULL REFERENCES operators(id),
		miqaat_id   BIGINT NOT NULL REFERENCES miqaats(id) ON DELETE CASCADE,
		scanned_at  TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_arrival_scans_miqaat_id ON arrival_scans(miqaat_id)`,

	`CREATE TABLE IF NOT EXISTS accommodations (
		id                 BIGSERIAL PRIMARY KEY,
		its_id             TEXT NOT NULL REFERENCES mumineen(its_id),
		miqaat_id          BIGINT NOT NULL REFERENCES miqaats(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		city               TEXT NOT NULL,
		pincode            TEXT,
		accommodation_type TEXT NOT NULL,
		room_number        TEXT,
		check_in_date      DATE NOT NULL,
		check_out_date     DATE NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accommodations_its_id ON accommodations(its_id)`,

	`CREATE TABLE IF NOT EXISTS waaz_centers (
		id          BIGSERIAL PRIMARY KEY,
		center_name TEXT NOT NULL,
		location    TEXT NOT NULL,
		capacity    INTEGER NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS waaz_center_preferences (
		id             BIGSERIAL PRIMARY KEY,
		its_id         TEXT NOT NULL REFERENCES mumineen(its_id),
		waaz_center_id BIGINT NOT NULL REFERENCES waaz_centers(id) ON DELETE CASCADE,
		miqaat_id      BIGINT NOT NULL REFERENCES miqaats(id) ON DELETE CASCADE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (its_id, miqaat_id)
	)`,
}

// Migrate applies the schema to the connected database.
func Migrate(db DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
