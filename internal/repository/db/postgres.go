package db

import (
	"database/sql"
	"net/url"

	"bidboard/internal/config"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func NewPostgresDB(cfg *config.PostgresConfig) (*sql.DB, error) {
	log.Info().Str("conn", redact(cfg.Conn)).Msg("Connecting db")
	db, err := sql.Open("postgres", cfg.Conn)

	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

func redact(conn string) string {
	u, err := url.Parse(conn)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
