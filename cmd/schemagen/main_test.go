package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/koustreak/schemagen/internal/config"
	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
	"github.com/koustreak/schemagen/internal/filestore/local"
	"github.com/koustreak/schemagen/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		dir := t.TempDir()
		s, err := openStore(context.Background(), &filestore.Config{Provider: filestore.ProviderLocal, Root: dir}, logger.Nop())
		require.NoError(t, err)
		require.IsType(t, &local.Store{}, s)
		assert.Equal(t, filepath.Join(dir, "a", "b.js"), s.Location("a/b.js"))
	})

	t.Run("local root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		_, err := openStore(context.Background(), &filestore.Config{Provider: filestore.ProviderLocal, Root: file}, logger.Nop())
		require.Error(t, err)
		assert.True(t, errs.IsFilesystem(err))
	})

	t.Run("minio without bucket", func(t *testing.T) {
		_, err := openStore(context.Background(), &filestore.Config{Provider: filestore.ProviderMinIO, Endpoint: "localhost:9000"}, logger.Nop())
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := openStore(context.Background(), &filestore.Config{Provider: "ftp"}, logger.Nop())
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})
}

func TestRun_UnreachableDatabaseWritesNothing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadFrom(func(string) string { return "" })
	require.NoError(t, err)
	cfg.Database = &database.Config{
		Driver:         database.DriverMySQL,
		Host:           "127.0.0.1",
		Port:           1,
		User:           "root",
		Database:       "source_db",
		ConnectTimeout: 2 * time.Second,
	}
	cfg.Store.Root = dir

	err = run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errs.IsConnectionFailed(err), "got %v", err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_LogsThroughContextLogger(t *testing.T) {
	cfg, err := config.LoadFrom(func(string) string { return "" })
	require.NoError(t, err)
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Database.ConnectTimeout = time.Second
	cfg.Store.Root = t.TempDir()

	var buf bytes.Buffer
	log := logger.New(&logger.Config{Level: "debug", Format: "json", Output: &buf})

	err = run(log.WithContext(context.Background()), cfg)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "local output root "+cfg.Store.Root)
	assert.Contains(t, out, "starting generation")
	assert.Contains(t, out, "writing modules under")
}
