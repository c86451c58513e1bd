package logger

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ErrorAddsErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger
	Logger = zap.New(core)
	defer func() { Logger = prev }()

	Error("Repository: сбой", errors.New("boom"), zap.String("task_id", "1"))
	Error("Repository: без ошибки", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
	assert.Equal(t, "1", entries[0].ContextMap()["task_id"])
	assert.NotContains(t, entries[1].ContextMap(), "error")
}

func TestLogger_HttpRequestInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Logger
	Logger = zap.New(core)
	defer func() { Logger = prev }()

	r := httptest.NewRequest("GET", "/api/projects", nil)
	HttpRequestInfo(r, "HTTP_IN:", zap.String("request_id", "abc"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/projects", fields["path"])
	assert.Equal(t, "abc", fields["request_id"])
}

func TestLogger_Init(t *testing.T) {
	prev := Logger
	defer func() { Logger = prev }()

	require.NoError(t, Init(false))
	require.NoError(t, Init(true))
	assert.NotNil(t, Logger)
}
