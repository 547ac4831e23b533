package logfacade

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func decodeEntries(t *testing.T, data string) []logEntry {
	t.Helper()
	var entries []logEntry
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		entries = append(entries, e)
	}
	return entries
}

func jsonStdoutConfig(levels map[string]string) Config {
	cfg := Config{
		Appenders:  map[string]AppenderConfig{"out": {Type: AppenderStdout, Format: FormatJSON}},
		Categories: map[string]CategoryConfig{},
	}
	for name, level := range levels {
		cfg.Categories[name] = CategoryConfig{Appenders: []string{"out"}, Level: level}
	}
	return cfg
}

func newTestEngine(t *testing.T, levels map[string]string) (*Engine, *threadSafeBuffer) {
	t.Helper()
	out := &threadSafeBuffer{}
	e, err := NewEngine(jsonStdoutConfig(levels), WithConsoleOutput(out))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, out
}

func TestEngine_WritesJSONEntries(t *testing.T) {
	e, out := newTestEngine(t, map[string]string{DefaultCategory: "trace"})

	e.GetLogger("billing").Info("invoice sent", 42, "eur")
	e.GetLogger("").Warn("root message")

	entries := decodeEntries(t, out.String())
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0][zerolog.LevelFieldName])
	assert.Equal(t, "billing", entries[0][CategoryField])
	assert.Equal(t, "invoice sent", entries[0][zerolog.MessageFieldName])
	assert.Equal(t, []any{float64(42), "eur"}, entries[0]["args"])
	assert.Contains(t, entries[0], zerolog.TimestampFieldName)

	assert.Equal(t, "warn", entries[1][zerolog.LevelFieldName])
	assert.Equal(t, DefaultCategory, entries[1][CategoryField])
	assert.NotContains(t, entries[1], "args")
}

func TestEngine_HierarchicalLevels(t *testing.T) {
	e, out := newTestEngine(t, map[string]string{
		DefaultCategory: "error",
		"db":            "debug",
		"db.pool":       "warn",
	})

	tests := []struct {
		category string
		debug    bool
		warn     bool
	}{
		{"db", true, true},
		{"db.migrations", true, true},
		{"db.pool", false, true},
		{"db.pool.idle", false, true},
		{"dbx", false, false},
		{"web", false, false},
	}
	for _, tt := range tests {
		l := e.GetLogger(tt.category)
		assert.Equal(t, tt.debug, l.IsDebugEnabled(), tt.category)
		assert.Equal(t, tt.warn, l.IsWarnEnabled(), tt.category)
		assert.True(t, l.IsErrorEnabled(), tt.category)
	}

	e.GetLogger("db.pool.idle").Debug("dropped")
	e.GetLogger("db.migrations").Debug("kept")
	entries := decodeEntries(t, out.String())
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0][zerolog.MessageFieldName])
	assert.Equal(t, "db.migrations", entries[0][CategoryField])
}

func TestEngine_FatalDoesNotExit(t *testing.T) {
	e, out := newTestEngine(t, map[string]string{DefaultCategory: "fatal"})
	l := e.GetLogger("svc")

	assert.True(t, l.IsFatalEnabled())
	assert.False(t, l.IsErrorEnabled())

	l.Error("dropped")
	l.Fatal("still running")

	entries := decodeEntries(t, out.String())
	require.Len(t, entries, 1)
	assert.Equal(t, "fatal", entries[0][zerolog.LevelFieldName])
	assert.Equal(t, "still running", entries[0][zerolog.MessageFieldName])
}

func TestEngine_Off(t *testing.T) {
	e, out := newTestEngine(t, map[string]string{DefaultCategory: "off"})
	l := e.GetLogger("svc")

	for _, s := range Severities() {
		assert.False(t, enabledAt(l, s), s.String())
		logAt(l, s, "nothing", nil)
	}
	assert.Empty(t, out.String())
}

func TestEngine_TextConsole(t *testing.T) {
	out := &threadSafeBuffer{}
	e, err := NewEngine(DefaultConfig("debug"), WithConsoleOutput(out))
	require.NoError(t, err)

	e.GetLogger("svc").Debug("plain text")
	assert.Contains(t, out.String(), "plain text")
	assert.Contains(t, out.String(), "category=")
	assert.Contains(t, out.String(), "svc")
	assert.False(t, strings.HasPrefix(out.String(), "{"))
}

func TestEngine_FileAppender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	console := &threadSafeBuffer{}

	cfg := Config{
		Appenders: map[string]AppenderConfig{
			"console": {Type: AppenderConsole, Format: FormatJSON},
			"file":    {Type: AppenderFile, Filename: path, MaxSizeMB: 1},
		},
		Categories: map[string]CategoryConfig{
			DefaultCategory: {Appenders: []string{"console"}, Level: "info"},
			"audit":         {Appenders: []string{"console", "file"}, Level: "info"},
		},
	}
	e, err := NewEngine(cfg, WithConsoleOutput(console))
	require.NoError(t, err)

	e.GetLogger("audit.login").Info("user signed in")
	e.GetLogger("web").Info("console only")
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fileEntries := decodeEntries(t, string(data))
	require.Len(t, fileEntries, 1)
	assert.Equal(t, "user signed in", fileEntries[0][zerolog.MessageFieldName])
	assert.Equal(t, "audit.login", fileEntries[0][CategoryField])

	consoleEntries := decodeEntries(t, console.String())
	assert.Len(t, consoleEntries, 2)
}

func TestEngine_InvalidConfig(t *testing.T) {
	_, err := NewEngine(jsonStdoutConfig(map[string]string{"db": "info"}))
	require.Error(t, err)
	assert.True(t, IsInvalidConfig(err))
}

func TestEngine_ErrorArgsEmitChainFields(t *testing.T) {
	e, out := newTestEngine(t, map[string]string{DefaultCategory: "info"})

	inner := smerrors.New("db.Connect").Msg("dial tcp 127.0.0.1:5432: connect: connection refused")
	outer := smerrors.New("server.Start").Err(inner).Msg("startup failed")
	second := errors.New("cleanup failed")

	e.GetLogger("server").Error("boom", outer, "attempt", second)

	entries := decodeEntries(t, out.String())
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, "startup failed", entry[zerolog.ErrorFieldName])
	assert.Equal(t, []any{"startup failed", "dial tcp 127.0.0.1:5432: connect: connection refused"}, entry["error_chain"])
	assert.Equal(t, "dial tcp 127.0.0.1:5432: connect: connection refused", entry["error_root"])
	assert.Equal(t, "startup failed -> dial tcp 127.0.0.1:5432: connect: connection refused", entry["error_history"])
	assert.Equal(t, []any{"server.Start", "db.Connect"}, entry["error_ops"])
	assert.Equal(t, "db.Connect", entry["error_root_op"])

	assert.Equal(t, "cleanup failed", entry["error_1"])
	assert.Equal(t, "cleanup failed", entry["error_1_root"])
	assert.NotContains(t, entry, "error_1_root_op")
	assert.Equal(t, []any{"attempt"}, entry["args"])
}
