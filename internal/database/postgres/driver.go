// Package postgres implements database.DB for PostgreSQL on top of pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/errs"
)

// Driver is a PostgreSQL implementation of database.DB backed by a single
// pgx.Conn (no pool).
type Driver struct {
	conn *pgx.Conn
}

// Open connects to PostgreSQL using cfg and verifies the connection with Ping.
func Open(ctx context.Context, cfg *database.Config) (*Driver, error) {
	connCfg, err := pgx.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}
	if cfg.ConnectTimeout > 0 {
		connCfg.ConnectTimeout = cfg.ConnectTimeout
	}

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, connectError(ctx, err)
	}

	d := &Driver{conn: conn}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(context.Background())
		return nil, connectError(ctx, err)
	}

	return d, nil
}

// --- database.DB implementation ---

// Ping verifies the server still answers on this connection.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.conn.Ping(ctx); err != nil {
		return mapError(err, "ping failed", errs.ErrKindConnectionFailed)
	}
	return nil
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, sql string, args ...any) (database.Rows, error) {
	rows, err := d.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "query failed", errs.ErrKindQueryFailed)
	}
	return &pgxRows{rows: rows}, nil
}

// Close terminates the connection.
func (d *Driver) Close() error {
	return d.conn.Close(context.Background())
}

func (d *Driver) Driver() database.Driver {
	return database.DriverPostgres
}

// --- pgx type wrappers ---

// pgxRows wraps pgx.Rows to satisfy database.Rows.
type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool { return r.rows.Next() }
func (r *pgxRows) Close()     { r.rows.Close() }

func (r *pgxRows) Scan(dest ...any) error {
	if err := r.rows.Scan(dest...); err != nil {
		return mapError(err, "scan failed", errs.ErrKindQueryFailed)
	}
	return nil
}

func (r *pgxRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return mapError(err, "row iteration failed", errs.ErrKindQueryFailed)
	}
	return nil
}

// buildDSN constructs the postgres:// URL for cfg.
func buildDSN(cfg *database.Config) string {
	q := url.Values{}
	q.Set("sslmode", "disable")
	if cfg.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     cfg.Addr(),
		Path:     "/" + cfg.Database,
		RawQuery: q.Encode(),
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}
	return u.String()
}

// --- error mapping ---

// connectError classifies a failure while establishing the connection. It is
// a timeout only when the caller's ctx is done; connect_timeout expiring
// means the server is unreachable.
func connectError(ctx context.Context, err error) *errs.Error {
	if ctx.Err() != nil {
		return errs.Wrap(errs.ErrKindTimeout, "connect cancelled", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.Wrap(errs.ErrKindConnectionFailed, "connect failed: "+pgErr.Message, err)
	}
	return errs.Wrap(errs.ErrKindConnectionFailed, "connect failed", err)
}

// mapError translates pgx / pgconn native errors into *errs.Error.
// SQLSTATE class 08 (connection exception) and class 28 (invalid
// authorization) are ConnectionFailed; other server errors take fallback.
func mapError(err error, msg string, fallback errs.ErrKind) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := fallback
		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case "08", "28":
				kind = errs.ErrKindConnectionFailed
			case "3D": // invalid_catalog_name: the database does not exist
				kind = errs.ErrKindConnectionFailed
			}
		}
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
	}

	// Network, TLS and other client-side failures.
	return errs.Wrap(fallback, msg, err)
}
