package skagent

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/LifeMC/skagent/internal/queue"
)

// ConsoleName is the name of the host's default output target.
const ConsoleName = "console"

// Target is a message sink trackers write plain text lines to, such as the
// server console or a specific player. Delivery failures are the host's
// concern.
type Target interface {
	// Name identifies the target. Two targets with the same name are the
	// same destination.
	Name() string

	// Send delivers one line of text.
	Send(text string)
}

// WriterTarget writes each line to an io.Writer followed by a newline.
// Safe for concurrent use.
type WriterTarget struct {
	name string
	mu   sync.Mutex
	out  io.Writer
}

// NewWriterTarget creates a WriterTarget called name writing to out.
func NewWriterTarget(name string, out io.Writer) *WriterTarget {
	return &WriterTarget{name: name, out: out}
}

// Name returns the target name.
func (t *WriterTarget) Name() string {
	return t.name
}

// Send writes text as a single line.
func (t *WriterTarget) Send(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, text)
}

// LoggerTarget forwards each line to a structured logger at Info level.
type LoggerTarget struct {
	name   string
	logger *slog.Logger
}

// NewLoggerTarget creates a LoggerTarget called name. A nil logger uses
// slog.Default().
func NewLoggerTarget(name string, logger *slog.Logger) *LoggerTarget {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggerTarget{name: name, logger: logger}
}

// Name returns the target name.
func (t *LoggerTarget) Name() string {
	return t.name
}

// Send logs text with the target name attached.
func (t *LoggerTarget) Send(text string) {
	t.logger.Info(text, "target", t.name)
}

// QueuedTarget hands lines to another target on a background goroutine, so
// a slow destination such as a file never stalls the goroutine that emitted
// the event. Lines reach the inner target in Send order.
type QueuedTarget struct {
	inner Target
	lines *queue.Queue[string]
	done  chan struct{}
}

// NewQueuedTarget starts forwarding to inner. Call Close to flush and stop.
func NewQueuedTarget(inner Target) *QueuedTarget {
	t := &QueuedTarget{
		inner: inner,
		lines: queue.New[string](),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		t.lines.Drain(inner.Send)
	}()
	return t
}

// Name returns the inner target's name.
func (t *QueuedTarget) Name() string {
	return t.inner.Name()
}

// Send queues text. It never blocks on the inner target.
func (t *QueuedTarget) Send(text string) {
	t.lines.Push(text)
}

// Close waits until every queued line reached the inner target. Lines sent
// afterwards are dropped.
func (t *QueuedTarget) Close() {
	t.lines.Close()
	<-t.done
}

var (
	_ Target = (*WriterTarget)(nil)
	_ Target = (*LoggerTarget)(nil)
	_ Target = (*QueuedTarget)(nil)
)
