//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// sqliteDriver is the pure-Go driver; build with -tags cgo_sqlite for mattn/go-sqlite3.
const sqliteDriver = "sqlite"

func openDB(dataSource string) (*sql.DB, error) {
	return sql.Open(sqliteDriver, dataSource)
}
