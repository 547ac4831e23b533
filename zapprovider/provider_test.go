package zapprovider

import (
	"errors"
	"testing"

	"github.com/Station-Manager/logfacade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProvider_RoutesThroughNamedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := New(zap.New(core))

	l := p.GetLogger("billing.invoices")
	l.Info("invoice sent", 42, "eur")
	l.Debug("below threshold")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "billing.invoices", entries[0].LoggerName)
	assert.Equal(t, "invoice sent", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, []any{42, "eur"}, entries[0].ContextMap()["args"])
}

func TestProvider_Enablement(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	l := New(zap.New(core)).GetLogger("svc")

	assert.False(t, l.IsTraceEnabled())
	assert.False(t, l.IsDebugEnabled())
	assert.False(t, l.IsInfoEnabled())
	assert.True(t, l.IsWarnEnabled())
	assert.True(t, l.IsErrorEnabled())
	assert.True(t, l.IsFatalEnabled())
}

func TestProvider_TraceWritesAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core)).GetLogger("svc")

	assert.True(t, l.IsTraceEnabled())
	l.Trace("fine grained")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestProvider_FatalDoesNotExit(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core)).GetLogger("svc")

	l.Fatal("still running")

	entries := logs.FilterLevelExact(zapcore.FatalLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "still running", entries[0].Message)
}

func TestProvider_ErrorFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core)).GetLogger("svc")

	l.Error("boom", errors.New("first"), "ctx", errors.New("second"))

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "first", ctx["error"])
	assert.Equal(t, "second", ctx["error_1"])
	assert.Equal(t, []any{"ctx"}, ctx["args"])
}

func TestProvider_NilBase(t *testing.T) {
	l := New(nil).GetLogger("svc")
	assert.False(t, l.IsErrorEnabled())
	l.Error("nowhere")
}

func TestProvider_InstalledInRegistry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := logfacade.NewRegistry(logfacade.WithFallback(func() (logfacade.Provider, error) {
		return logfacade.Discard, nil
	}))
	f := r.GetLogger("db").GetLogger("pool")

	f.Info("before install")
	require.NoError(t, r.SetProvider(New(zap.New(core))))
	f.Info("after install")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "after install", entries[0].Message)
	assert.Equal(t, "db.pool", entries[0].LoggerName)
}
