package audit

import (
	"context"
	"sync"
	"time"

	"github.com/DorLamesh/devops-web-app/internal/logging"
)

// Sink accepts audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(event *Event)
}

// Emitter queues events on a bounded channel consumed by a single writer
// goroutine, so callers are not slowed down by the sink. When the queue is
// full the event is written synchronously instead of being dropped.
type Emitter struct {
	logger logging.Logger
	queue  chan *Event

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewEmitter starts the writer goroutine. queueSize bounds the number of
// in-flight events; values below 1 are raised to 1.
func NewEmitter(logger logging.Logger, queueSize int) *Emitter {
	if queueSize < 1 {
		queueSize = 1
	}
	e := &Emitter{
		logger: logger.With("channel", "audit"),
		queue:  make(chan *Event, queueSize),
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Emitter) run() {
	defer close(e.done)
	for event := range e.queue {
		e.write(event)
	}
}

// Emit enqueues an event for writing. It never blocks on the normal path and
// never returns an error to the caller; a full queue degrades to a
// synchronous write.
func (e *Emitter) Emit(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.write(event)
		return
	}
	select {
	case e.queue <- event:
		e.mu.Unlock()
	default:
		e.mu.Unlock()
		e.write(event)
	}
}

func (e *Emitter) write(event *Event) {
	args := []any{
		"timestamp", event.Timestamp.UTC().Format(time.RFC3339Nano),
		"action", event.Action,
	}
	if event.UserID != nil {
		args = append(args, "user_id", *event.UserID)
	}
	if event.IP != "" {
		args = append(args, "ip", event.IP)
	}
	if event.Data != nil {
		args = append(args, "data", event.Data)
	}
	if event.Raw != "" {
		args = append(args, "raw", event.Raw)
	}
	e.logger.Info(context.Background(), "audit", args...)
}

// Close stops the writer after draining queued events. Emit remains usable
// after Close and falls back to synchronous writes.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()
	<-e.done
}
