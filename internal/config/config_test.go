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
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o644))
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t, `
port: 9090
log_level: debug
jwt_ttl: 1h
load_failsafe: 5s
max_content_len: 500
`, `
jwt_key: secret
pg:
  host: localhost
  port: 5432
  user: retro
  password: retro
  dbname: retroboard
`)

	cfg := MustLoad(dir)

	assert.Equal(t, 9090, cfg.Public.Port)
	assert.Equal(t, "debug", cfg.Public.LogLevel)
	assert.Equal(t, time.Hour, cfg.JwtTTL())
	assert.Equal(t, 5*time.Second, cfg.Public.LoadFailsafe)
	assert.Equal(t, 500, cfg.Public.MaxContentLen)
	assert.Equal(t, "secret", cfg.JwtKey())
	assert.Equal(t, "retroboard", cfg.Private.Pg.Dbname)
}

func TestMustLoadDefaults(t *testing.T) {
	dir := writeConfigs(t, "log_level: info\n", "jwt_key: k\n")

	cfg := MustLoad(dir)

	assert.Equal(t, 8080, cfg.Public.Port)
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL())
	assert.Equal(t, 8*time.Second, cfg.Public.LoadFailsafe)
	assert.Equal(t, 2000, cfg.Public.MaxContentLen)
	assert.Equal(t, 200, cfg.Public.MaxTitleLen)
}

func TestMustLoadMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}
