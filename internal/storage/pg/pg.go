package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/retroboard-dev/retroboard/internal/config"
	"github.com/retroboard-dev/retroboard/internal/logger"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")

	storage := &Storage{db, cfg}
	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return storage, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnStr(cfg))
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func ConnStr(cfg *config.Config) string {
	pg := cfg.Private.Pg
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Dbname)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// itemsChannel is the NOTIFY channel item triggers publish board ids on.
const itemsChannel = "retroboard_items"

func (s *Storage) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		pass_hash TEXT NOT NULL,
		created TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS boards (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		board_id UUID NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		column_type TEXT NOT NULL CHECK (column_type IN ('went-well', 'to-improve', 'action-items')),
		author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		author_email TEXT NOT NULL,
		is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
		votes INT NOT NULL DEFAULT 0,
		voters JSONB NOT NULL DEFAULT '{}',
		created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS items_board_idx ON items(board_id);
	CREATE INDEX IF NOT EXISTS boards_owner_idx ON boards(owner_id);

	CREATE OR REPLACE FUNCTION notify_items_changed() RETURNS trigger AS $$
	BEGIN
		IF TG_OP = 'DELETE' THEN
			PERFORM pg_notify('` + itemsChannel + `', OLD.board_id::text);
			RETURN OLD;
		END IF;
		PERFORM pg_notify('` + itemsChannel + `', NEW.board_id::text);
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;

	DROP TRIGGER IF EXISTS items_changed ON items;
	CREATE TRIGGER items_changed
		AFTER INSERT OR UPDATE OR DELETE ON items
		FOR EACH ROW EXECUTE FUNCTION notify_items_changed();
	`)
	return err
}
