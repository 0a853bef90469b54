package skagent

import (
	"sync/atomic"
	"time"
)

// Clock supplies monotonic nanosecond timestamps for Start/End events.
// It lets tests inject deterministic time.
type Clock interface {
	// Nanotime returns a monotonic reading in nanoseconds. Only differences
	// between two readings are meaningful.
	Nanotime() int64
}

// SystemClock reads Go's monotonic clock relative to its creation time.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock creates a SystemClock anchored at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Nanotime returns nanoseconds elapsed since the clock was created.
func (c *SystemClock) Nanotime() int64 {
	return int64(time.Since(c.origin))
}

// MockClock is a Clock that only moves when told to.
// Safe for concurrent use.
type MockClock struct {
	now atomic.Int64
}

// NewMockClock creates a MockClock reading start.
func NewMockClock(start int64) *MockClock {
	c := &MockClock{}
	c.now.Store(start)
	return c
}

// Set moves the clock to an absolute reading.
func (c *MockClock) Set(nanos int64) {
	c.now.Store(nanos)
}

// Advance moves the clock forward by d and returns the new reading.
func (c *MockClock) Advance(d time.Duration) int64 {
	return c.now.Add(int64(d))
}

// Nanotime returns the current reading.
func (c *MockClock) Nanotime() int64 {
	return c.now.Load()
}

// Compile-time checks.
var (
	_ Clock = (*SystemClock)(nil)
	_ Clock = (*MockClock)(nil)
)
