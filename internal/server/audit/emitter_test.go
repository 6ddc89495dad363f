package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DorLamesh/devops-web-app/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log calls so tests can assert on emitted fields.
type recordingLogger struct {
	mu      sync.Mutex
	entries [][]any
}

func (l *recordingLogger) record(args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, args)
}

func (l *recordingLogger) Info(ctx context.Context, msg string, args ...any)  { l.record(args) }
func (l *recordingLogger) Warn(ctx context.Context, msg string, args ...any)  { l.record(args) }
func (l *recordingLogger) Error(ctx context.Context, msg string, args ...any) { l.record(args) }
func (l *recordingLogger) With(args ...any) logging.Logger                    { return l }

func (l *recordingLogger) all() [][]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]any, len(l.entries))
	copy(out, l.entries)
	return out
}

func argsToMap(t *testing.T, args []any) map[string]any {
	t.Helper()
	require.Equal(t, 0, len(args)%2)
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		require.True(t, ok)
		m[key] = args[i+1]
	}
	return m
}

func TestEmitter_WritesEvent(t *testing.T) {
	rec := &recordingLogger{}
	e := NewEmitter(rec, 16)

	userID := int64(42)
	e.Emit(&Event{Action: ActionLogin, UserID: &userID, IP: "10.0.0.1"})
	e.Close()

	entries := rec.all()
	require.Len(t, entries, 1)
	fields := argsToMap(t, entries[0])
	assert.Equal(t, ActionLogin, fields["action"])
	assert.Equal(t, int64(42), fields["user_id"])
	assert.Equal(t, "10.0.0.1", fields["ip"])
	assert.NotEmpty(t, fields["timestamp"])
	assert.NotContains(t, fields, "data")
	assert.NotContains(t, fields, "raw")
}

func TestEmitter_DBChangePayloads(t *testing.T) {
	rec := &recordingLogger{}
	e := NewEmitter(rec, 16)

	e.Emit(&Event{Action: ActionDBChange, Data: map[string]any{"table": "users"}})
	e.Emit(&Event{Action: ActionDBChange, Raw: "not json"})
	e.Close()

	entries := rec.all()
	require.Len(t, entries, 2)

	parsed := argsToMap(t, entries[0])
	assert.Equal(t, map[string]any{"table": "users"}, parsed["data"])
	assert.NotContains(t, parsed, "raw")

	raw := argsToMap(t, entries[1])
	assert.Equal(t, "not json", raw["raw"])
	assert.NotContains(t, raw, "data")
}

func TestEmitter_FullQueueNeverDrops(t *testing.T) {
	rec := &recordingLogger{}
	e := NewEmitter(rec, 1)

	const n = 200
	for i := 0; i < n; i++ {
		e.Emit(&Event{Action: ActionSignup})
	}
	e.Close()

	assert.Len(t, rec.all(), n)
}

func TestEmitter_ConcurrentEmit(t *testing.T) {
	rec := &recordingLogger{}
	e := NewEmitter(rec, 8)

	var wg sync.WaitGroup
	const workers = 10
	const perWorker = 50
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				e.Emit(&Event{Action: ActionProfileView})
			}
		}()
	}
	wg.Wait()
	e.Close()

	assert.Len(t, rec.all(), workers*perWorker)
}

func TestEmitter_EmitAfterCloseIsSynchronous(t *testing.T) {
	rec := &recordingLogger{}
	e := NewEmitter(rec, 4)
	e.Close()

	e.Emit(&Event{Action: ActionLogin, Timestamp: time.Now()})
	assert.Len(t, rec.all(), 1)
}
