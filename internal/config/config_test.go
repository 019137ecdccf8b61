package config

import (
	"bytes"
	"flag"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, lookupFrom(nil), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "fundbuero.sqlite3", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, MediaFS, cfg.Media.Backend)
	assert.Equal(t, "public/uploads", cfg.Media.Root)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "fundbuero", cfg.S3.Bucket)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, LogText, cfg.LogFormat)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadLogSettings(t *testing.T) {
	env := lookupFrom(map[string]string{"FUNDBUERO_LOG_LEVEL": "warn", "FUNDBUERO_LOG_FORMAT": "json"})
	cfg, err := Load([]string{"-log-level", "debug"}, env, &bytes.Buffer{})
	require.NoError(t, err)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Equal(t, LogJSON, cfg.LogFormat)

	_, err = Load([]string{"-log-level", "loud"}, lookupFrom(nil), &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = Load([]string{"-log-format", "xml"}, lookupFrom(nil), &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}

func TestLoadEnvironment(t *testing.T) {
	cfg, err := Load(nil, lookupFrom(map[string]string{
		"FUNDBUERO_DB":            "/var/lib/fundbuero.db",
		"FUNDBUERO_MEDIA_BACKEND": "s3",
		"FUNDBUERO_S3_ENDPOINT":   "minio:9000",
		"FUNDBUERO_S3_USE_SSL":    "true",
		"FUNDBUERO_SESSION_TTL":   "2h",
		"FUNDBUERO_JWT_SECRET":    "s3cret",
	}), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/fundbuero.db", cfg.DBPath)
	assert.Equal(t, MediaS3, cfg.Media.Backend)
	assert.Equal(t, "minio:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := lookupFrom(map[string]string{"FUNDBUERO_ADDR": ":9000", "FUNDBUERO_DB": "env.db"})

	cfg, err := Load([]string{"-a", ":7000", "-db", "flag.db", "-r", "/srv/uploads"}, env, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "flag.db", cfg.DBPath)
	assert.Equal(t, "/srv/uploads", cfg.Media.Root)
}

func TestLoadErrors(t *testing.T) {
	var usage bytes.Buffer
	_, err := Load([]string{"-h"}, lookupFrom(nil), &usage)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, usage.String(), "Usage: fundbuero")

	_, err = Load([]string{"extra"}, lookupFrom(nil), &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Load([]string{"-media", "ftp"}, lookupFrom(nil), &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown media backend")

	_, err = Load(nil, lookupFrom(map[string]string{"FUNDBUERO_SESSION_TTL": "soon"}), &bytes.Buffer{})
	assert.Error(t, err)
}
