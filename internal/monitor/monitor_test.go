package monitor

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := New(logger)
	require.NotNil(t, m)
	m.Report(context.Background())

	out := buf.String()
	assert.Contains(t, out, "msg=resource")
	assert.Contains(t, out, "elapsed=")
	assert.Contains(t, out, "heap=")
}

func TestReport_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	New(logger).Report(context.Background())
	assert.Empty(t, buf.String())
}
