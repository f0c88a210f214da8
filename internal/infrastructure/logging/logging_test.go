package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("chatty"))
}

func TestNewLogger_RotatingFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "planner.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
		Rotation: config.RotationConfig{Enabled: true, MaxSize: 1, MaxBackups: 1},
	}

	// Act
	logger, closer, err := logging.NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("route planned", slog.String("origin", "KHPN"))
	logger.Debug("suppressed")
	require.NoError(t, closer.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "route planned", entry["msg"])
	assert.Equal(t, "KHPN", entry["origin"])
}

func TestNewLogger_FileOutputNeedsPath(t *testing.T) {
	_, _, err := logging.NewLogger(config.LoggingConfig{Output: "file"})

	assert.Error(t, err)
}

type replanCommand struct{}

func TestMiddleware_InjectsLoggerAndLogsFailures(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mw := logging.Middleware(logger)

	next := func(ctx context.Context, request common.Request) (common.Response, error) {
		common.LoggerFromContext(ctx).Log("INFO", "inside handler", map[string]interface{}{"legs": 4})
		return nil, errors.New("no landmarks")
	}

	// Act
	_, err := mw(context.Background(), &replanCommand{}, next)

	// Assert
	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, `"msg":"inside handler"`)
	assert.Contains(t, out, `"legs":4`)
	assert.Contains(t, out, `"request":"replanCommand"`)
	assert.Contains(t, out, `"error":"no landmarks"`)
}
