package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ResolvesRoot(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, root, s.Root())

	wd, err := os.Getwd()
	require.NoError(t, err)
	s, err = New("")
	require.NoError(t, err)
	assert.Equal(t, wd, s.Root())
}

func TestStore_PutCreatesParents(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	key := "src/api/user/content-types/user/schema.json"
	require.NoError(t, s.Put(context.Background(), key, []byte("{}\n")))

	got, err := os.ReadFile(filepath.Join(root, "src", "api", "user", "content-types", "user", "schema.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))
	assert.Equal(t, filepath.Join(root, filepath.FromSlash(key)), s.Location(key))
}

func TestStore_PutOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a/b.js", []byte("one")))
	require.NoError(t, s.Put(ctx, "a/b.js", []byte("two")))

	got, err := os.ReadFile(s.Location("a/b.js"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestStore_PutRejectsEscapingKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	err = s.Put(context.Background(), "../escape.js", []byte("x"))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestStore_PutOverFileIsFilesystemError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "src"), []byte("not a dir"), 0o644))

	s, err := New(root)
	require.NoError(t, err)

	err = s.Put(context.Background(), "src/api/user/routes/user.js", []byte("x"))
	require.Error(t, err)
	assert.True(t, errs.IsFilesystem(err))
}

func TestStore_PingRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	s, err := New(file)
	require.NoError(t, err)
	assert.True(t, errs.IsFilesystem(s.Ping(context.Background())))
}

func TestStore_PingMissingRootIsFine(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "not", "yet"))
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestStore_PutCancelled(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Put(ctx, "a.js", []byte("x"))
	require.Error(t, err)
	assert.True(t, errs.IsTimeout(err))
}
