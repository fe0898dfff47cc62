package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite mirror of the listings dataset and makes sure the
// schema exists. The server only reads it; cmd/importlistings fills it.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// :memory: databases are per connection.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS listings(
  id INTEGER PRIMARY KEY,
  position INTEGER NOT NULL DEFAULT 0,
  make TEXT NOT NULL DEFAULT '',
  model TEXT NOT NULL DEFAULT '',
  year INTEGER NOT NULL DEFAULT 0,
  km INTEGER NOT NULL DEFAULT 0,
  fuel TEXT NOT NULL DEFAULT '',
  gearbox TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  location TEXT NOT NULL DEFAULT '',
  images_json TEXT,
  description TEXT,
  garage_name TEXT,
  garage_phone TEXT,
  garage_email TEXT,
  imported_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_listings_make ON listings(make);
`
	_, err := db.Exec(schema)
	return err
}
