package repo

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS embedding_cache (
	model_name TEXT NOT NULL,
	task_type TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	embedding BLOB NOT NULL,
	ctime INTEGER NOT NULL,
	PRIMARY KEY (model_name, task_type, content_hash)
);
`

func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func ApplyMigrations(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
