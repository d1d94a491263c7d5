package notify

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresConfig holds the Postgres persistence settings.
type PostgresConfig struct {
	Enabled bool   `env:"POSTGRES_ENABLED" envDefault:"false"` // Enabled toggles the sink.
	DSN     string `env:"POSTGRES_DSN"`                        // DSN is the pgx connection string.
}

// pgExecer is the slice of pgxpool.Pool the sink needs, extracted for
// testability.
type pgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSink persists visit events into the visits table.
type PostgresSink struct {
	db pgExecer
}

// NewPostgresSink creates a Postgres sink over an open pool.
func NewPostgresSink(db pgExecer) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Name() string { return "postgres" }

const visitsSchema = `
CREATE TABLE IF NOT EXISTS visits (
	event_id      UUID PRIMARY KEY,
	observed_at   TIMESTAMPTZ NOT NULL,
	is_unique     BOOLEAN NOT NULL,
	visit_count   BIGINT NOT NULL,
	ip            TEXT NOT NULL,
	method        TEXT NOT NULL,
	path          TEXT NOT NULL,
	referrer      TEXT,
	country       TEXT,
	country_code  TEXT,
	city          TEXT,
	isp           TEXT,
	device        TEXT,
	os            TEXT,
	browser       TEXT,
	is_bot        BOOLEAN NOT NULL,
	fingerprint   TEXT NOT NULL,
	visitor_hash  TEXT NOT NULL,
	session_type  TEXT NOT NULL,
	trust_score   INT NOT NULL,
	trust_level   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_observed_at ON visits (observed_at);
CREATE INDEX IF NOT EXISTS idx_visits_visitor_hash ON visits (visitor_hash);
`

// EnsureSchema creates the visits table when it does not exist yet.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, visitsSchema); err != nil {
		return fmt.Errorf("ensure visits schema: %w", err)
	}
	return nil
}

const insertVisit = `
INSERT INTO visits (
	event_id, observed_at, is_unique, visit_count,
	ip, method, path, referrer,
	country, country_code, city, isp,
	device, os, browser, is_bot,
	fingerprint, visitor_hash, session_type, trust_score, trust_level
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
	$12, $13, $14, $15, $16, $17, $18, $19, $20, $21
)`

func (s *PostgresSink) Notify(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, insertVisit,
		rec.EventID, rec.Timestamp, rec.Tracking.IsUnique, rec.Tracking.VisitCount,
		rec.Request.IP, rec.Request.Method, rec.Request.Path, rec.Request.Referrer,
		rec.Geo.Country, rec.Geo.CountryCode, rec.Geo.City, rec.Geo.ISP,
		rec.Device.Device, rec.Device.OS, rec.Device.Browser, rec.Device.Bot,
		rec.Session.Fingerprint, rec.Session.VisitorHash, rec.Session.SessionType,
		rec.Session.TrustScore, rec.Session.TrustLevel,
	)
	if err != nil {
		return fmt.Errorf("postgres delivery: %w", err)
	}
	return nil
}
