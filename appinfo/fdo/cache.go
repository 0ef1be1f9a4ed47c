// Copyright © 2025 Strata contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appinfo/fdo/cache.go
// Summary: SQLite cache of resolved desktop entries keyed by app id.
// Notes: Rows carry the desktop file's mtime; readers revalidate against the
// file so edited entries re-resolve without explicit invalidation.

package fdo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Bump when the table layout changes; the cache is rebuilt from scratch.
const cacheSchemaVersion = 1

const cacheSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS desktop_entries (
    app_id        TEXT PRIMARY KEY,
    name          TEXT NOT NULL DEFAULT '',
    icon_path     TEXT NOT NULL DEFAULT '',
    desktop_path  TEXT NOT NULL DEFAULT '',
    desktop_mtime INTEGER NOT NULL DEFAULT 0
);
`

type cacheRow struct {
	appID        string
	name         string
	iconPath     string
	desktopPath  string
	desktopMtime int64
}

type entryCache struct {
	db *sql.DB
}

func openEntryCache(path string) (*entryCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to cache database: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	if err := migrateCacheSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &entryCache{db: db}, nil
}

// migrateCacheSchema drops stale rows when the stored version does not
// match. The cache is derived data, rebuilding is always safe.
func migrateCacheSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, cacheSchemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("read cache schema version: %w", err)
	}
	if version == cacheSchemaVersion {
		return nil
	}
	if _, err := db.Exec(`DELETE FROM desktop_entries`); err != nil {
		return fmt.Errorf("reset cache: %w", err)
	}
	if _, err := db.Exec(`UPDATE schema_version SET version = ?`, cacheSchemaVersion); err != nil {
		return fmt.Errorf("update cache schema version: %w", err)
	}
	return nil
}

func (c *entryCache) lookup(ctx context.Context, appID string) (cacheRow, bool) {
	row := cacheRow{appID: appID}
	err := c.db.QueryRowContext(ctx,
		`SELECT name, icon_path, desktop_path, desktop_mtime FROM desktop_entries WHERE app_id = ?`,
		appID,
	).Scan(&row.name, &row.iconPath, &row.desktopPath, &row.desktopMtime)
	if err != nil {
		return cacheRow{}, false
	}
	return row, true
}

func (c *entryCache) store(ctx context.Context, row cacheRow) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO desktop_entries (app_id, name, icon_path, desktop_path, desktop_mtime)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(app_id) DO UPDATE SET
		     name = excluded.name,
		     icon_path = excluded.icon_path,
		     desktop_path = excluded.desktop_path,
		     desktop_mtime = excluded.desktop_mtime`,
		row.appID, row.name, row.iconPath, row.desktopPath, row.desktopMtime,
	)
	return err
}

func (c *entryCache) Close() error {
	return c.db.Close()
}
