package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Both drivers understand $n placeholders and this schema
const createKeysTable = `CREATE TABLE IF NOT EXISTS api_keys (
	id BIGINT PRIMARY KEY,
	username TEXT NOT NULL,
	api_key CHAR(63) NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
)`

func openDatabase(cfg databaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.Dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database. %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database. %w", err)
	}

	if _, err := db.Exec(createKeysTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating key table. %w", err)
	}

	return db, nil
}
