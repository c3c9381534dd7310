// Package mysql implements database.DB for MySQL on top of database/sql and
// go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/errs"
)

// Driver is a MySQL implementation of database.DB holding exactly one
// connection. It is not meant to be shared between goroutines.
type Driver struct {
	db *sql.DB
}

// Open connects to MySQL using cfg and verifies the connection with Ping.
//
// The DSN carries no default database: the catalog query is fully qualified
// against INFORMATION_SCHEMA, so a wrong database name yields an empty
// schema instead of a connection failure.
func Open(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}

	d := OpenDB(db)

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := d.db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, connectError(ctx, err)
	}

	return d, nil
}

// OpenDB wraps an existing *sql.DB, capping it to a single connection.
func OpenDB(db *sql.DB) *Driver {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &Driver{db: db}
}

// --- database.DB implementation ---

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed", errs.ErrKindConnectionFailed)
	}
	return nil
}

func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed", errs.ErrKindQueryFailed)
	}
	return &mysqlRows{rows: rows}, nil
}

func (d *Driver) Close() error {
	return d.db.Close()
}

func (d *Driver) Driver() database.Driver {
	return database.DriverMySQL
}

// --- sql.Rows wrapper ---

type mysqlRows struct {
	rows *sql.Rows
}

func (r *mysqlRows) Next() bool { return r.rows.Next() }
func (r *mysqlRows) Close()     { _ = r.rows.Close() }

func (r *mysqlRows) Scan(dest ...any) error {
	if err := r.rows.Scan(dest...); err != nil {
		return mapError(err, "scan failed", errs.ErrKindQueryFailed)
	}
	return nil
}

func (r *mysqlRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return mapError(err, "row iteration failed", errs.ErrKindQueryFailed)
	}
	return nil
}

// buildDSN constructs the DSN from cfg, leaving DBName empty.
func buildDSN(cfg *database.Config) string {
	c := gomysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = cfg.Addr()
	if cfg.ConnectTimeout > 0 {
		c.Timeout = cfg.ConnectTimeout
	}
	return c.FormatDSN()
}

// --- error mapping ---

// connectError classifies a failure while establishing the connection. It is
// a timeout only when the caller's ctx is done; a server that refuses, hangs
// past ConnectTimeout or rejects the credentials is unreachable.
func connectError(ctx context.Context, err error) *errs.Error {
	if ctx.Err() != nil {
		return errs.Wrap(errs.ErrKindTimeout, "connect cancelled", err)
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errs.Wrap(errs.ErrKindConnectionFailed, "connect failed: "+mysqlErr.Message, err)
	}
	return errs.Wrap(errs.ErrKindConnectionFailed, "connect failed", err)
}

// MySQL server error numbers that mean "you cannot talk to this server".
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errDBAccessDenied  = 1044
	errAccessDenied    = 1045
	errTooManyConns    = 1040
	errUserTooManyConn = 1203
	errHostNotAllowed  = 1130
)

// mapError translates go-sql-driver/mysql errors into *errs.Error.
// Auth and connection-limit errors are always ConnectionFailed; anything
// else takes fallback.
func mapError(err error, msg string, fallback errs.ErrKind) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errs.Wrap(
			classifyMySQLCode(mysqlErr.Number, fallback),
			fmt.Sprintf("%s: %s", msg, mysqlErr.Message),
			err,
		)
	}

	return errs.Wrap(fallback, msg, err)
}

func classifyMySQLCode(code uint16, fallback errs.ErrKind) errs.ErrKind {
	switch code {
	case errDBAccessDenied, errAccessDenied, errHostNotAllowed:
		return errs.ErrKindConnectionFailed
	case errTooManyConns, errUserTooManyConn:
		return errs.ErrKindConnectionFailed
	default:
		return fallback
	}
}
