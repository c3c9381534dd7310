// Package config loads schemagen's settings from the environment, an
// optional .env file and an optional YAML mapping file.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	db := cfg.Database // *database.Config
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
	"github.com/koustreak/schemagen/internal/logger"
	"github.com/koustreak/schemagen/internal/naming"
)

// Output controls the generated tree.
type Output struct {
	// Dir is the API root relative to the store, e.g. "src/api".
	Dir string

	// Extension is the stub language: "js" or "ts".
	Extension string

	// DraftAndPublish sets options.draftAndPublish on every content type.
	DraftAndPublish bool
}

// Config is everything one run needs. It is loaded once and passed down.
type Config struct {
	Database    *database.Config
	TablePrefix string
	Output      Output
	Store       *filestore.Config
	Log         *logger.Config

	// MappingFile is the YAML overrides path; Mapping holds its contents.
	MappingFile string
	Mapping     *Mapping
}

// Load reads .env from the working directory, if present, then builds the
// Config from the process environment. Variables already set in the
// environment take precedence over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to read .env", err)
	}
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config using getenv for every lookup.
func LoadFrom(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}
	db := database.DefaultConfig()
	store := filestore.DefaultConfig()
	logCfg := logger.DefaultConfig()

	driver := database.Driver(strings.ToLower(env.get("SOURCE_DB_DRIVER", string(db.Driver))))
	if !driver.Valid() {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "SOURCE_DB_DRIVER: unsupported driver %q", driver)
	}

	cfg := &Config{
		Database: &database.Config{
			Driver:         driver,
			Host:           env.get("SOURCE_DB_HOST", db.Host),
			Port:           env.getInt("SOURCE_DB_PORT", driver.DefaultPort()),
			User:           env.get("SOURCE_DB_USER", db.User),
			Password:       env.get("SOURCE_DB_PASSWORD", ""),
			Database:       env.get("SOURCE_DB_NAME", db.Database),
			Schema:         env.get("SOURCE_DB_SCHEMA", db.Schema),
			ConnectTimeout: time.Duration(env.getInt("SOURCE_DB_CONNECT_TIMEOUT", 0)) * time.Second,
		},
		TablePrefix: env.get("SOURCE_DB_TABLE_PREFIX", ""),
		Output: Output{
			Dir:             env.get("OUTPUT_DIR", naming.DefaultRoot),
			Extension:       strings.ToLower(env.get("OUTPUT_EXT", "js")),
			DraftAndPublish: env.getBool("OUTPUT_DRAFT_AND_PUBLISH", false),
		},
		Store: &filestore.Config{
			Provider:  filestore.Provider(strings.ToLower(env.get("OUTPUT_TARGET", string(store.Provider)))),
			Root:      store.Root,
			Endpoint:  env.get("MINIO_ENDPOINT", ""),
			AccessKey: env.get("MINIO_ACCESS_KEY", ""),
			SecretKey: env.get("MINIO_SECRET_KEY", ""),
			UseSSL:    env.getBool("MINIO_USE_SSL", false),
			Region:    env.get("MINIO_REGION", ""),
			Bucket:    env.get("MINIO_BUCKET", ""),
			Prefix:    env.get("MINIO_PREFIX", ""),
		},
		Log: &logger.Config{
			Level:      env.get("LOG_LEVEL", logCfg.Level),
			Format:     env.get("LOG_FORMAT", logCfg.Format),
			TimeFormat: logCfg.TimeFormat,
			Output:     logCfg.Output,
		},
		MappingFile: env.get("SCHEMAGEN_MAPPING", ""),
	}

	if err := env.err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.MappingFile != "" {
		m, err := LoadMapping(cfg.MappingFile)
		if err != nil {
			return nil, err
		}
		cfg.Mapping = m
	} else {
		cfg.Mapping = &Mapping{}
	}

	return cfg, nil
}

// Validate checks values that the environment helpers cannot.
func (c *Config) Validate() error {
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return errs.Newf(errs.ErrKindInvalidInput, "SOURCE_DB_PORT: %d out of range", c.Database.Port)
	}
	if c.Database.ConnectTimeout < 0 {
		return errs.New(errs.ErrKindInvalidInput, "SOURCE_DB_CONNECT_TIMEOUT: must not be negative")
	}
	if _, err := filestore.CleanKey(c.Output.Dir); err != nil {
		return errs.Wrap(errs.ErrKindInvalidInput, "OUTPUT_DIR: must be a relative path inside the output root", err)
	}
	switch c.Output.Extension {
	case "js", "ts":
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "OUTPUT_EXT: unsupported extension %q", c.Output.Extension)
	}
	switch c.Store.Provider {
	case filestore.ProviderLocal:
	case filestore.ProviderMinIO:
		if c.Store.Endpoint == "" || c.Store.Bucket == "" {
			return errs.New(errs.ErrKindInvalidInput, "OUTPUT_TARGET=minio needs MINIO_ENDPOINT and MINIO_BUCKET")
		}
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "OUTPUT_TARGET: unsupported target %q", c.Store.Provider)
	}
	return nil
}

// envReader collects the first parse failure so LoadFrom can read every
// key in one pass.
type envReader struct {
	getenv   func(string) string
	firstErr error
}

func (e *envReader) get(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) getInt(key string, def int) int {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(errs.Wrap(errs.ErrKindInvalidInput, key+": not an integer", err))
		return def
	}
	return n
}

func (e *envReader) getBool(key string, def bool) bool {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(errs.Wrap(errs.ErrKindInvalidInput, key+": not a boolean", err))
		return def
	}
	return b
}

func (e *envReader) fail(err error) {
	if e.firstErr == nil {
		e.firstErr = err
	}
}

func (e *envReader) err() error {
	return e.firstErr
}
