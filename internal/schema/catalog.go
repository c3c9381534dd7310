package schema

import (
	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/errs"
)

// mysqlColumnsQuery lists every column of every table in one database.
// Ordering by ORDINAL_POSITION keeps columns in declaration order.
const mysqlColumnsQuery = `
	SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE
	FROM INFORMATION_SCHEMA.COLUMNS
	WHERE TABLE_SCHEMA = ?
	ORDER BY TABLE_NAME, ORDINAL_POSITION`

// postgresColumnsQuery is the information_schema equivalent for one
// database and namespace.
const postgresColumnsQuery = `
	SELECT table_name, column_name, data_type, is_nullable
	FROM information_schema.columns
	WHERE table_catalog = $1
	  AND table_schema  = $2
	ORDER BY table_name, ordinal_position`

// catalogQuery returns the dialect's column query and its arguments.
func catalogQuery(opts Options) (string, []any, error) {
	switch opts.Driver {
	case database.DriverMySQL, "":
		return mysqlColumnsQuery, []any{opts.Database}, nil
	case database.DriverPostgres:
		ns := opts.Schema
		if ns == "" {
			ns = "public"
		}
		return postgresColumnsQuery, []any{opts.Database, ns}, nil
	default:
		return "", nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported driver %q", opts.Driver)
	}
}
