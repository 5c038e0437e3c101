package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.Info("ReplyService", "reply generated", map[string]interface{}{"site_id": "s-1"})
	l.Error("ReplyService", "persist failed", map[string]interface{}{"error": errors.New("disk full")})
	l.Warn("Hub", "no details", nil)

	entries := logs.All()
	assert.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "ReplyService", first["module"])
	assert.Equal(t, map[string]interface{}{"site_id": "s-1"}, first["details"])

	second := entries[1].ContextMap()
	assert.Equal(t, "disk full", second["error_ref"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	assert.Equal(t, "Hub", entries[2].ContextMap()["module"])
}

func TestIsolatedLoggerWritesToFile(t *testing.T) {
	path := t.TempDir() + "/notification.log"
	l := NewIsolatedLogger(path)

	l.Info("Hub", "client registered", map[string]interface{}{"user_id": "u-1"})
	assert.NoError(t, l.Sync())
	assert.FileExists(t, path)
}
