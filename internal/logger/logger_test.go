package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe swaps Log for an in-memory core for the duration of the test.
func observe(t *testing.T, lvl zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(lvl)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })
	return logs
}

func TestComponentNamesEntries(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	Component("layout").Debug("chimney fallback", zap.String("reason", "no roof vertices"))
	Component("animate").Info("car configured")
	Component("model").Logger().Named("async").Warn("slow load")
	Info("root line")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "layout", entries[0].LoggerName)
	assert.Equal(t, "chimney fallback", entries[0].Message)
	assert.Equal(t, "no roof vertices", entries[0].ContextMap()["reason"])
	assert.Equal(t, "animate", entries[1].LoggerName)
	assert.Equal(t, "model.async", entries[2].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Empty(t, entries[3].LoggerName)
}

func TestComponentFollowsInit(t *testing.T) {
	scope := Component("renderer")

	first := observe(t, zapcore.InfoLevel)
	scope.Info("before")

	second := observe(t, zapcore.InfoLevel)
	scope.Info("after")
	scope.Debug("filtered")

	assert.Equal(t, 1, first.Len())
	require.Equal(t, 1, second.Len())
	assert.Equal(t, "after", second.All()[0].Message)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev; Sugar = prev.Sugar() })

	assert.Error(t, Init("loud", ""))
	assert.Same(t, prev, Log)
}

func TestFileOutputCarriesComponent(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev; Sugar = prev.Sugar() })

	path := filepath.Join(t.TempDir(), "diorama.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	require.NoError(t, InitWithFileConfig("info", cfg, false))

	Component("window").Info("window created", zap.Int("width", 1280))
	Component("window").Debug("below level")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], "window")
	assert.Contains(t, lines[0], "window created")
	assert.Contains(t, lines[0], `"width": 1280`)
	assert.Contains(t, lines[0], "logger_test.go")
}

func TestLogRotation(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev; Sugar = prev.Sugar() })

	dir := t.TempDir()
	cfg := FileConfig{
		Path:       filepath.Join(dir, "frames.log"),
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
	}
	require.NoError(t, InitWithFileConfig("debug", cfg, false))

	scope := Component("app")
	payload := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		scope.Debug("frame", zap.Int("n", i), zap.String("pad", payload))
	}
	Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated int
	for _, e := range entries {
		name := e.Name()
		if name == "frames.log" {
			continue
		}
		if strings.HasPrefix(name, "frames-") && strings.HasSuffix(name, ".log") {
			rotated++
		}
	}
	assert.GreaterOrEqual(t, rotated, 1)
}

func TestNoOutputsDiscards(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev; Sugar = prev.Sugar() })

	require.NoError(t, InitWithFileConfig("debug", FileConfig{}, false))
	assert.NotPanics(t, func() {
		Component("cycle").Error("dropped")
		Sync()
	})
}
