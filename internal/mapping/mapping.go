// Package mapping translates database catalog type names into Strapi
// attribute types.
package mapping

import (
	"maps"
	"strings"

	"github.com/koustreak/schemagen/internal/database"
)

// Fallback is the target type used for any catalog type with no entry.
const Fallback = "string"

// TypeMap maps a lowercase catalog type name to a target attribute type.
type TypeMap map[string]string

// mysqlTypes is the MySQL DATA_TYPE table. Never handed out directly.
var mysqlTypes = TypeMap{
	"int":      "integer",
	"bigint":   "biginteger",
	"varchar":  "string",
	"text":     "text",
	"datetime": "datetime",
	"date":     "date",
	"tinyint":  "boolean",
	"decimal":  "float",
	"double":   "float",
	"float":    "float",
}

// postgresTypes is the information_schema data_type table for PostgreSQL.
var postgresTypes = TypeMap{
	"integer":                     "integer",
	"smallint":                    "integer",
	"bigint":                      "biginteger",
	"character varying":           "string",
	"character":                   "string",
	"text":                        "text",
	"timestamp without time zone": "datetime",
	"timestamp with time zone":    "datetime",
	"date":                        "date",
	"boolean":                     "boolean",
	"numeric":                     "float",
	"double precision":            "float",
	"real":                        "float",
	"json":                        "json",
	"jsonb":                       "json",
	"uuid":                        "string",
}

// MySQLTypes returns a fresh copy of the MySQL type table.
func MySQLTypes() TypeMap { return maps.Clone(mysqlTypes) }

// PostgresTypes returns a fresh copy of the PostgreSQL type table.
func PostgresTypes() TypeMap { return maps.Clone(postgresTypes) }

// Mapper looks catalog types up in a fixed table. It is a value type and
// safe to copy; With returns a new Mapper rather than mutating.
type Mapper struct {
	types    TypeMap
	fallback string
}

// New builds a Mapper over a private copy of types. An empty fallback means
// Fallback.
func New(types TypeMap, fallback string) Mapper {
	if fallback == "" {
		fallback = Fallback
	}
	return Mapper{types: maps.Clone(types), fallback: fallback}
}

// ForDialect returns the default Mapper for the given engine.
func ForDialect(d database.Driver) Mapper {
	if d == database.DriverPostgres {
		return New(postgresTypes, Fallback)
	}
	return New(mysqlTypes, Fallback)
}

// With returns a copy of m with overrides layered on top.
func (m Mapper) With(overrides TypeMap, fallback string) Mapper {
	merged := maps.Clone(m.types)
	if merged == nil {
		merged = TypeMap{}
	}
	for k, v := range overrides {
		merged[normalize(k)] = v
	}
	if fallback == "" {
		fallback = m.fallback
	}
	return Mapper{types: merged, fallback: fallback}
}

// Map returns the target type for sourceType. It never fails: unknown
// types yield the fallback.
func (m Mapper) Map(sourceType string) string {
	if t, ok := m.types[normalize(sourceType)]; ok {
		return t
	}
	if m.fallback == "" {
		return Fallback
	}
	return m.fallback
}

// MapType maps sourceType with the default MySQL table.
func MapType(sourceType string) string {
	if t, ok := mysqlTypes[normalize(sourceType)]; ok {
		return t
	}
	return Fallback
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
