package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/debounce"
)

type manualTimer struct {
	fn     func()
	at     time.Duration
	active bool
}

func (t *manualTimer) Stop() bool {
	was := t.active
	t.active = false
	return was
}

type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{fn: fn, at: c.now + d, active: true}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if t.active && t.at <= c.now {
			t.active = false
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

type dropdownHarness struct {
	clock    *manualClock
	dd       *Dropdown
	searches []string
	changes  []*string
}

func newHarness(t *testing.T) *dropdownHarness {
	t.Helper()
	h := &dropdownHarness{clock: &manualClock{}}
	h.dd = NewDropdown(DropdownConfig{
		Placeholder: "Select carrier",
		Scheduler:   debounce.New(h.clock.AfterFunc),
		OnSearch:    func(q string) { h.searches = append(h.searches, q) },
		OnChange:    func(id *string) { h.changes = append(h.changes, id) },
	})
	h.dd.SetOptions([]Option{{ID: "1", Name: "Emirates"}, {ID: "2", Name: "Lufthansa Cargo"}, {ID: "3", Name: "Maersk"}})
	t.Cleanup(h.dd.Close)
	return h
}

func TestDropdownDebouncesSearch(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()

	h.dd.Type("e")
	h.clock.Advance(100 * time.Millisecond)
	h.dd.Type("em")
	h.clock.Advance(100 * time.Millisecond)
	h.dd.Type("emi")

	assert.Equal(t, "emi", h.dd.Query())
	assert.Empty(t, h.searches)

	h.clock.Advance(DefaultSearchDelay)
	assert.Equal(t, []string{"emi"}, h.searches)
}

func TestDropdownFiltersLocally(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()
	h.dd.Type("CARGO")

	v := h.dd.View()
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Lufthansa Cargo", v.Rows[0].Name)
}

func TestDropdownSelectNotifiesAndCloses(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()
	h.dd.Type("ma")

	require.True(t, h.dd.Select("3"))

	require.Len(t, h.changes, 1)
	require.NotNil(t, h.changes[0])
	assert.Equal(t, "3", *h.changes[0])
	assert.False(t, h.dd.IsOpen())
	assert.Empty(t, h.dd.Query())
	assert.Equal(t, "Maersk", h.dd.View().Label)

	h.clock.Advance(time.Second)
	assert.Empty(t, h.searches)
}

func TestDropdownSelectUnknownIgnored(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.dd.Select("99"))
	assert.Empty(t, h.changes)
}

func TestDropdownClearReportsNil(t *testing.T) {
	h := newHarness(t)
	id := "1"
	h.dd.SetValue(&id)

	h.dd.Clear()

	require.Len(t, h.changes, 1)
	assert.Nil(t, h.changes[0])
	assert.False(t, h.dd.IsOpen())
	v := h.dd.View()
	assert.True(t, v.Placeholder)
	assert.Equal(t, "Select carrier", v.Label)
}

func TestDropdownSelectThenClear(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()

	require.True(t, h.dd.Select("1"))
	h.dd.Clear()

	require.Len(t, h.changes, 2)
	require.NotNil(t, h.changes[0])
	assert.Equal(t, "1", *h.changes[0])
	assert.Nil(t, h.changes[1])
	assert.Nil(t, h.dd.Value())
	v := h.dd.View()
	assert.True(t, v.Placeholder)
	assert.Equal(t, "Select carrier", v.Label)
	assert.False(t, v.Clearable)
}

func TestDropdownClickOutsideDoesNotSearch(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()
	h.dd.Type("lu")

	h.dd.ClickOutside()
	h.clock.Advance(time.Second)

	assert.False(t, h.dd.IsOpen())
	assert.Empty(t, h.dd.Query())
	assert.Empty(t, h.searches)
}

func TestDropdownCloseCancelsPendingSearch(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()
	h.dd.Type("mae")

	h.dd.Close()
	h.clock.Advance(time.Second)

	assert.Empty(t, h.searches)
}

func TestDropdownStatuses(t *testing.T) {
	h := newHarness(t)
	h.dd.Open()

	h.dd.SetLoading(true)
	assert.Equal(t, StatusLoading, h.dd.View().Status)
	assert.Equal(t, "Loading...", h.dd.View().Message)
	h.dd.SetLoading(false)

	h.dd.Type("zzz")
	v := h.dd.View()
	assert.Equal(t, StatusNoResults, v.Status)
	assert.Equal(t, "No results found", v.Message)

	h.dd.ClickOutside()
	h.dd.SetOptions(nil)
	h.dd.Open()
	v = h.dd.View()
	assert.Equal(t, StatusNoOptions, v.Status)
	assert.Equal(t, "No options available", v.Message)
}

func TestDropdownDisabledDoesNotOpen(t *testing.T) {
	dd := NewDropdown(DropdownConfig{Placeholder: "Select", Disabled: true})
	defer dd.Close()

	dd.Toggle()
	dd.Open()

	assert.False(t, dd.IsOpen())
}

func TestDropdownClosedViewHasNoRows(t *testing.T) {
	h := newHarness(t)
	v := h.dd.View()
	assert.False(t, v.Open)
	assert.Empty(t, v.Rows)
}
