package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/backoffice/configs"
)

const baseYAML = `
app:
  name: backoffice
  http_addr: ":8080"
  metrics_addr: ":9090"
  log_level: debug

http:
  read_timeout: 10s
  write_timeout: 15s
  idle_timeout: 60s

postgres:
  dsn: ""

kafka:
  brokers: []
  topic_events: backoffice.order.events

auth:
  jwt_secret: test-secret
  issuer: backoffice
  audience: backoffice-api
  token_ttl: 1h
  username: admin
  password: admin-pass
`

func writeBase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(baseYAML), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeBase(t)

	cfg, err := configs.Load(dir)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.App.HTTPAddr)
	require.Equal(t, ":9090", cfg.App.MetricsAddr)
	require.Equal(t, "debug", cfg.App.LogLevel)
	require.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, "backoffice.order.events", cfg.Kafka.TopicEvents)
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	require.Empty(t, cfg.Postgres.DSN)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := writeBase(t)

	t.Setenv("BACKOFFICE_POSTGRES__DSN", "postgres://localhost/backoffice")
	t.Setenv("BACKOFFICE_APP__HTTP_ADDR", ":9999")

	cfg, err := configs.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/backoffice", cfg.Postgres.DSN)
	require.Equal(t, ":9999", cfg.App.HTTPAddr)
}

func TestLoadMissingBase(t *testing.T) {
	_, err := configs.Load(t.TempDir())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := writeBase(t)
	cfg, err := configs.Load(dir)
	require.NoError(t, err)

	broken := cfg
	broken.App.HTTPAddr = ""
	require.Error(t, broken.Validate())

	broken = cfg
	broken.Auth.JWTSecret = ""
	require.Error(t, broken.Validate())

	broken = cfg
	broken.Auth.Password = ""
	require.Error(t, broken.Validate())

	broken = cfg
	broken.Auth.TokenTTL = 0
	require.Error(t, broken.Validate())
}
