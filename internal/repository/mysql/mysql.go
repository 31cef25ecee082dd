// Package mysql implements the storage ports on a MySQL database.
// Uniqueness invariants (one rating per user and media, one like per
// user and rating, one favorite per user and media, unique usernames)
// are enforced by unique keys; see configs/schema.sql.
package mysql

import (
	"database/sql"
	"errors"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

// Open connects to the database. The DSN must include parseTime=true so
// TIMESTAMP columns scan into time.Time.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// isDuplicate reports whether err is a unique key violation.
func isDuplicate(err error) bool {
	var mysqlErr *driver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
