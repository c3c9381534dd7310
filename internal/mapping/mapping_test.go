package mapping

import (
	"testing"

	"github.com/koustreak/schemagen/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestMapType_Supported(t *testing.T) {
	tests := map[string]string{
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

	for src, want := range tests {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, want, MapType(src))
		})
	}
}

func TestMapType_UnsupportedFallsBackToString(t *testing.T) {
	for _, src := range []string{"", "json", "blob", "enum", "geometry", "character varying", "uuid"} {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, "string", MapType(src))
		})
	}
}

func TestMapType_NormalizesInput(t *testing.T) {
	assert.Equal(t, "integer", MapType("INT"))
	assert.Equal(t, "biginteger", MapType(" BigInt "))
}

func TestForDialect(t *testing.T) {
	my := ForDialect(database.DriverMySQL)
	pg := ForDialect(database.DriverPostgres)

	assert.Equal(t, "boolean", my.Map("tinyint"))
	assert.Equal(t, "string", my.Map("boolean"))

	assert.Equal(t, "boolean", pg.Map("boolean"))
	assert.Equal(t, "string", pg.Map("character varying"))
	assert.Equal(t, "datetime", pg.Map("timestamp with time zone"))
	assert.Equal(t, "json", pg.Map("jsonb"))
	assert.Equal(t, "string", pg.Map("uuid"))
	assert.Equal(t, "string", pg.Map("tsvector"))
}

func TestMapper_WithOverrides(t *testing.T) {
	base := ForDialect(database.DriverMySQL)
	custom := base.With(TypeMap{"JSON": "json", "tinyint": "integer"}, "text")

	assert.Equal(t, "json", custom.Map("json"))
	assert.Equal(t, "integer", custom.Map("tinyint"))
	assert.Equal(t, "text", custom.Map("geometry"))

	// the base is untouched
	assert.Equal(t, "string", base.Map("json"))
	assert.Equal(t, "boolean", base.Map("tinyint"))
	assert.Equal(t, "string", base.Map("geometry"))
}

func TestTables_AreCopies(t *testing.T) {
	tbl := MySQLTypes()
	tbl["int"] = "string"

	assert.Equal(t, "integer", MapType("int"))
	assert.Equal(t, "integer", MySQLTypes()["int"])
	assert.Equal(t, "integer", PostgresTypes()["integer"])
}

func TestNew_CopiesInput(t *testing.T) {
	tbl := TypeMap{"int": "integer"}
	m := New(tbl, "")
	tbl["int"] = "string"

	assert.Equal(t, "integer", m.Map("int"))
	assert.Equal(t, Fallback, m.Map("other"))
}

func TestMapper_ZeroValue(t *testing.T) {
	var m Mapper
	assert.Equal(t, Fallback, m.Map("int"))
	assert.Equal(t, "integer", m.With(TypeMap{"int": "integer"}, "").Map("int"))
}
