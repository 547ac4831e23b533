package logfacade

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"go.uber.org/atomic"
)

// threadSafeBuffer is a bytes.Buffer guarded by a mutex for concurrent writers.
type threadSafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *threadSafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *threadSafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type record struct {
	severity Severity
	msg      string
	args     []any
}

// recordingLogger stores every call and enables severities at or above threshold.
type recordingLogger struct {
	owner    string
	category string

	mu        sync.Mutex
	records   []record
	threshold Severity
}

func (l *recordingLogger) add(s Severity, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record{severity: s, msg: msg, args: args})
}

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r.msg)
	}
	return out
}

func (l *recordingLogger) last() record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records[len(l.records)-1]
}

func (l *recordingLogger) setThreshold(s Severity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.threshold = s
}

func (l *recordingLogger) on(s Severity) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return s >= l.threshold
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.add(SeverityTrace, msg, args) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.add(SeverityDebug, msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.add(SeverityInfo, msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.add(SeverityWarn, msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.add(SeverityError, msg, args) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.add(SeverityFatal, msg, args) }

func (l *recordingLogger) IsTraceEnabled() bool { return l.on(SeverityTrace) }
func (l *recordingLogger) IsDebugEnabled() bool { return l.on(SeverityDebug) }
func (l *recordingLogger) IsInfoEnabled() bool  { return l.on(SeverityInfo) }
func (l *recordingLogger) IsWarnEnabled() bool  { return l.on(SeverityWarn) }
func (l *recordingLogger) IsErrorEnabled() bool { return l.on(SeverityError) }
func (l *recordingLogger) IsFatalEnabled() bool { return l.on(SeverityFatal) }

// recordingProvider returns one recordingLogger per category and counts calls.
type recordingProvider struct {
	name  string
	calls atomic.Int64

	mu      sync.Mutex
	loggers map[string]*recordingLogger
}

func newRecordingProvider(name string) *recordingProvider {
	return &recordingProvider{name: name, loggers: map[string]*recordingLogger{}}
}

func (p *recordingProvider) GetLogger(category string) Logger {
	p.calls.Inc()
	return p.logger(category)
}

func (p *recordingProvider) logger(category string) *recordingLogger {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.loggers[category]
	if !ok {
		l = &recordingLogger{owner: p.name, category: category, threshold: SeverityInfo}
		p.loggers[category] = l
	}
	return l
}

func noEnv(string) (string, bool) { return "", false }

func mapEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// newStubRegistry returns a registry whose fallback is a recordingProvider,
// along with the number of times the fallback was built.
func newStubRegistry(t testing.TB) (*Registry, *recordingProvider, *atomic.Int64) {
	t.Helper()
	fb := newRecordingProvider("fallback")
	builds := atomic.NewInt64(0)
	r := NewRegistry(
		WithEnvLookup(noEnv),
		WithDiagnostics(io.Discard),
		WithFallback(func() (Provider, error) {
			builds.Inc()
			return fb, nil
		}),
	)
	return r, fb, builds
}
