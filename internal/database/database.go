package database

import (
	"fmt"
	"time"
)

// Driver identifies the database engine.
type Driver string

const (
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
)

// Valid reports whether d is a supported engine.
func (d Driver) Valid() bool {
	return d == DriverMySQL || d == DriverPostgres
}

// DefaultPort returns the engine's standard TCP port.
func (d Driver) DefaultPort() int {
	if d == DriverPostgres {
		return 5432
	}
	return 3306
}

// Config holds everything needed to open the single catalog connection.
// There is no pool: one connection is opened per run and closed after the
// catalog query.
type Config struct {
	// Driver is the database engine (e.g. DriverMySQL).
	Driver Driver

	Host     string
	Port     int
	User     string
	Password string

	// Database is the catalog scope: TABLE_SCHEMA for MySQL, table_catalog
	// for Postgres.
	Database string

	// Schema narrows a Postgres catalog to one namespace (e.g. "public").
	// Ignored by MySQL, where database and schema are the same thing.
	Schema string

	// ConnectTimeout bounds connection establishment. Zero means no limit.
	ConnectTimeout time.Duration
}

// DefaultConfig returns the local-development defaults for MySQL.
func DefaultConfig() *Config {
	return &Config{
		Driver:   DriverMySQL,
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Database: "source_db",
		Schema:   "public",
	}
}

// Addr returns host:port, falling back to the engine's default port.
func (c *Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = c.Driver.DefaultPort()
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}
