package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func TestScheduleRunsOnlyLastCallOfBurst(t *testing.T) {
	clock := &fakeClock{}
	s := New(clock.AfterFunc)
	var got []string

	for _, q := range []string{"a", "ab", "abc"} {
		q := q
		require.NoError(t, s.Schedule("search", 300*time.Millisecond, func() { got = append(got, q) }))
		clock.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, got)
	assert.True(t, s.Pending("search"))

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, got)
	assert.False(t, s.Pending("search"))
}

func TestScheduleKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{}
	s := New(clock.AfterFunc)
	var got []string

	require.NoError(t, s.Schedule("carrier", time.Second, func() { got = append(got, "carrier") }))
	require.NoError(t, s.Schedule("port", time.Second, func() { got = append(got, "port") }))
	clock.Advance(time.Second)

	assert.ElementsMatch(t, []string{"carrier", "port"}, got)
}

func TestCancelPreventsCallback(t *testing.T) {
	clock := &fakeClock{}
	s := New(clock.AfterFunc)
	called := false

	require.NoError(t, s.Schedule("search", time.Second, func() { called = true }))
	assert.True(t, s.Cancel("search"))
	assert.False(t, s.Cancel("search"))
	clock.Advance(2 * time.Second)

	assert.False(t, called)
}

func TestCloseCancelsAndRejects(t *testing.T) {
	clock := &fakeClock{}
	s := New(clock.AfterFunc)
	called := false

	require.NoError(t, s.Schedule("search", time.Second, func() { called = true }))
	s.Close()
	clock.Advance(2 * time.Second)

	assert.False(t, called)
	assert.ErrorIs(t, s.Schedule("search", time.Second, func() {}), ErrClosed)
}

func TestSystemClock(t *testing.T) {
	s := New(nil)
	done := make(chan struct{})
	require.NoError(t, s.Schedule("x", time.Millisecond, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
}
