// Package schema reads table and column metadata from a database catalog.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/logger"
)

// Opener establishes the single catalog connection for a run.
type Opener func(ctx context.Context) (database.DB, error)

// Options scopes what the Reader looks at.
type Options struct {
	// Driver selects the catalog query dialect.
	Driver database.Driver

	// Database is the catalog scope (MySQL TABLE_SCHEMA, Postgres table_catalog).
	Database string

	// Schema is the Postgres namespace, e.g. "public". Ignored for MySQL.
	Schema string

	// TablePrefix keeps only tables whose name starts with it. Empty keeps all.
	TablePrefix string
}

// Reader builds a Map from the database catalog.
type Reader struct {
	open Opener
	opts Options
	log  *logger.Logger
}

// NewReader creates a Reader. A nil log discards output.
func NewReader(open Opener, opts Options, log *logger.Logger) *Reader {
	if log == nil {
		log = logger.Nop()
	}
	return &Reader{open: open, opts: opts, log: log}
}

// ReadSchema opens one connection, runs one catalog query and closes the
// connection before returning, on success and failure alike.
//
// Connection failures come back as errs.ErrKindConnectionFailed, catalog
// query and scan failures as errs.ErrKindQueryFailed.
func (r *Reader) ReadSchema(ctx context.Context) (*Map, error) {
	q, args, err := catalogQuery(r.opts)
	if err != nil {
		return nil, err
	}

	r.log.Debugf("catalog query %s args=%v", q, args)

	db, err := r.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			r.log.With().Err(cerr).Logger().Warnf("close %s catalog connection", db.Driver())
		}
	}()

	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", asQueryError(err))
	}
	defer rows.Close()

	m := NewMap()
	skipped := make(map[string]struct{})
	for rows.Next() {
		var table, isNullable string
		var col Column
		if err := rows.Scan(&table, &col.Name, &col.SourceType, &isNullable); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", asQueryError(err))
		}

		if !strings.HasPrefix(table, r.opts.TablePrefix) {
			skipped[table] = struct{}{}
			continue
		}

		col.SourceType = strings.ToLower(col.SourceType)
		col.Required = strings.EqualFold(isNullable, "NO")
		m.Add(table, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read schema: %w", asQueryError(err))
	}

	r.log.With().
		Str("database", r.opts.Database).
		Str("prefix", r.opts.TablePrefix).
		Int("tables", m.Len()).
		Int("skipped", len(skipped)).
		Logger().
		Info("read catalog")

	return m, nil
}

// asQueryError keeps an already-classified error and marks anything else
// as a query failure.
func asQueryError(err error) error {
	if errs.KindOf(err) != errs.ErrKindUnknown {
		return err
	}
	return errs.Wrap(errs.ErrKindQueryFailed, "catalog query failed", err)
}
