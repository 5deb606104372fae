package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad_Defaults(t *testing.T) {
	dir := writeConfigs(t, "log:\n  level: debug\n", "identity_secret: 's3cret'\n")

	cfg := MustLoad(dir)

	assert.Equal(t, "debug", cfg.Public.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Public.Storage.Driver)
	assert.Equal(t, "admin@unforum.dev", cfg.Public.Admin.Email)
	assert.False(t, cfg.Public.Admin.AllowLocalOverride)
	assert.Equal(t, 50, cfg.Public.Frontend.PostsPageSize)
	assert.Equal(t, 720*time.Hour, cfg.Public.Reactions.LikeTTL)
	assert.Equal(t, DefaultMaxBodyBytes, cfg.Public.Limits.BodyBytes())
	assert.Equal(t, DefaultContentMaxLen, cfg.Public.Limits.ContentLen())
	assert.Equal(t, "s3cret", cfg.IdentitySecret())
}

func TestLimitsFallBackWhenUnset(t *testing.T) {
	var l Limits
	assert.Equal(t, int64(1<<20), l.BodyBytes())
	assert.Equal(t, 20000, l.ContentLen())

	l = Limits{MaxBodyBytes: 512, ContentMaxLen: 8}
	assert.Equal(t, int64(512), l.BodyBytes())
	assert.Equal(t, 8, l.ContentLen())
}

func TestMustLoad_EnvOverride(t *testing.T) {
	dir := writeConfigs(t,
		"storage:\n  driver: pg\nadmin:\n  email: root@example.com\n",
		"identity_secret: 'k'\npg:\n  user: forum\n")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	t.Setenv("PG_PORT", "6543")

	cfg := MustLoad(dir)

	assert.Equal(t, DriverPg, cfg.Public.Storage.Driver)
	assert.Equal(t, "ops@example.com", cfg.Public.Admin.Email)
	assert.Equal(t, 6543, cfg.Private.Pg.Port)
	assert.Equal(t, "forum", cfg.Private.Pg.User)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(t.TempDir()) })
	})
	t.Run("unknown driver", func(t *testing.T) {
		dir := writeConfigs(t, "storage:\n  driver: sqlite\n", "identity_secret: 'k'\n")
		assert.Panics(t, func() { MustLoad(dir) })
	})
	t.Run("mongo without url", func(t *testing.T) {
		dir := writeConfigs(t, "storage:\n  driver: mongo\n", "identity_secret: 'k'\n")
		assert.Panics(t, func() { MustLoad(dir) })
	})
	t.Run("missing identity secret", func(t *testing.T) {
		dir := writeConfigs(t, "", "")
		assert.Panics(t, func() { MustLoad(dir) })
	})
}
