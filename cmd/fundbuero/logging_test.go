package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/fundbuero/internal/config"
)

func TestLogHandlerSplitsErrors(t *testing.T) {
	var out, errs bytes.Buffer
	h, err := newLogHandler(&config.Config{LogLevel: "info", LogFormat: config.LogText}, &out, &errs)
	require.NoError(t, err)
	logger := slog.New(h).With("component", "test")

	logger.Debug("hidden")
	logger.Info("started")
	logger.Warn("slow")
	logger.Error("broken")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=started")
	assert.Contains(t, out.String(), "msg=slow")
	assert.NotContains(t, out.String(), "broken")
	assert.Contains(t, errs.String(), "msg=broken")
	assert.Contains(t, errs.String(), "component=test")
}

func TestLogHandlerJSON(t *testing.T) {
	var out, errs bytes.Buffer
	h, err := newLogHandler(&config.Config{LogLevel: "debug", LogFormat: config.LogJSON}, &out, &errs)
	require.NoError(t, err)

	slog.New(h).WithGroup("req").Debug("detail", "path", "/api/items")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "detail", rec["msg"])
	assert.Equal(t, map[string]any{"path": "/api/items"}, rec["req"])
	assert.Empty(t, errs.String())
}
