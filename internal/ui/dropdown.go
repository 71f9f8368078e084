package ui

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freightdesk/freightdesk/internal/debounce"
)

// DefaultSearchDelay is the quiescence window before a remote search fires.
const DefaultSearchDelay = 300 * time.Millisecond

// Option is one selectable entry.
type Option struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Extra map[string]any `json:"extra,omitempty"`
}

// DropdownStatus describes what the open panel shows instead of rows.
type DropdownStatus int

const (
	StatusRows DropdownStatus = iota
	StatusLoading
	StatusNoResults
	StatusNoOptions
)

// Message returns the text rendered for the status.
func (s DropdownStatus) Message() string {
	switch s {
	case StatusLoading:
		return "Loading..."
	case StatusNoResults:
		return "No results found"
	case StatusNoOptions:
		return "No options available"
	default:
		return ""
	}
}

// DropdownConfig wires a dropdown to its owner.
type DropdownConfig struct {
	Placeholder string
	Disabled    bool
	// Delay overrides DefaultSearchDelay.
	Delay time.Duration
	// OnSearch receives the query once typing settles. Nil disables remote search.
	OnSearch func(query string)
	// OnChange receives the selected id, or nil when the selection is cleared.
	OnChange func(id *string)
	// Scheduler is shared with other controls; one is created when nil.
	Scheduler *debounce.Scheduler
}

// DropdownView is the render model for a dropdown.
type DropdownView struct {
	Label       string
	Placeholder bool
	Open        bool
	Query       string
	Clearable   bool
	Rows        []DropdownRow
	Status      DropdownStatus
	Message     string
}

// DropdownRow is one visible option.
type DropdownRow struct {
	Option
	Selected bool
}

var dropdownSeq atomic.Int64

// Dropdown is a searchable single-select control. The owner holds the
// options, the loading flag and the selected value; the dropdown holds the
// open flag and the query.
type Dropdown struct {
	mu        sync.Mutex
	cfg       DropdownConfig
	key       string
	sched     *debounce.Scheduler
	ownsSched bool

	options  []Option
	loading  bool
	value    *string
	selected *Option
	query    string
	open     bool
}

// NewDropdown creates a dropdown.
func NewDropdown(cfg DropdownConfig) *Dropdown {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultSearchDelay
	}
	d := &Dropdown{cfg: cfg, key: "dropdown-" + strconv.FormatInt(dropdownSeq.Add(1), 10)}
	if cfg.Scheduler != nil {
		d.sched = cfg.Scheduler
	} else {
		d.sched = debounce.New(nil)
		d.ownsSched = true
	}
	return d
}

// SetOptions replaces the candidate list.
func (d *Dropdown) SetOptions(opts []Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.options = append([]Option(nil), opts...)
	if d.value != nil {
		if opt, ok := findOption(d.options, *d.value); ok {
			d.selected = &opt
		}
	}
}

// SetLoading toggles the loading row.
func (d *Dropdown) SetLoading(loading bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = loading
}

// SetValue sets the selection from outside without notifying OnChange.
func (d *Dropdown) SetValue(id *string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setValueLocked(id)
}

// Value returns the selected id, nil when nothing is selected.
func (d *Dropdown) Value() *string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.value == nil {
		return nil
	}
	v := *d.value
	return &v
}

// Toggle opens or closes the panel, as a click on the field does.
func (d *Dropdown) Toggle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.Disabled {
		return
	}
	d.open = !d.open
}

// Open opens the panel.
func (d *Dropdown) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.Disabled {
		return
	}
	d.open = true
}

// IsOpen reports whether the panel is open.
func (d *Dropdown) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Query returns the current search text.
func (d *Dropdown) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

// Type updates the query immediately and schedules the remote search.
func (d *Dropdown) Type(query string) {
	d.mu.Lock()
	d.query = query
	onSearch := d.cfg.OnSearch
	delay := d.cfg.Delay
	d.mu.Unlock()

	if onSearch == nil {
		return
	}
	_ = d.sched.Schedule(d.key, delay, func() { onSearch(query) })
}

// Select picks the option with id, notifies the owner and closes the panel.
func (d *Dropdown) Select(id string) bool {
	d.mu.Lock()
	opt, ok := findOption(d.options, id)
	if !ok {
		d.mu.Unlock()
		return false
	}
	d.value = &opt.ID
	d.selected = &opt
	d.open = false
	d.query = ""
	onChange := d.cfg.OnChange
	d.mu.Unlock()

	d.sched.Cancel(d.key)
	if onChange != nil {
		v := opt.ID
		onChange(&v)
	}
	return true
}

// Clear removes the selection and notifies the owner with nil. The panel
// is not opened.
func (d *Dropdown) Clear() {
	d.mu.Lock()
	d.setValueLocked(nil)
	d.query = ""
	onChange := d.cfg.OnChange
	d.mu.Unlock()

	d.sched.Cancel(d.key)
	if onChange != nil {
		onChange(nil)
	}
}

// ClickOutside closes the panel and resets the query without searching.
func (d *Dropdown) ClickOutside() {
	d.mu.Lock()
	d.open = false
	d.query = ""
	d.mu.Unlock()
	d.sched.Cancel(d.key)
}

// Close tears the dropdown down. A pending search never fires afterwards.
func (d *Dropdown) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
	d.sched.Cancel(d.key)
	if d.ownsSched {
		d.sched.Close()
	}
}

// View returns the render model.
func (d *Dropdown) View() DropdownView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := DropdownView{Open: d.open, Query: d.query}
	if d.selected != nil {
		v.Label = d.selected.Name
		v.Clearable = !d.cfg.Disabled
	} else {
		v.Label = d.cfg.Placeholder
		v.Placeholder = true
	}
	if !d.open {
		return v
	}

	switch rows := d.filteredLocked(); {
	case d.loading:
		v.Status = StatusLoading
	case len(rows) == 0 && d.query != "":
		v.Status = StatusNoResults
	case len(rows) == 0:
		v.Status = StatusNoOptions
	default:
		v.Rows = rows
	}
	v.Message = v.Status.Message()
	return v
}

func (d *Dropdown) setValueLocked(id *string) {
	if id == nil {
		d.value = nil
		d.selected = nil
		return
	}
	v := *id
	d.value = &v
	if opt, ok := findOption(d.options, v); ok {
		d.selected = &opt
	} else {
		d.selected = nil
	}
}

func (d *Dropdown) filteredLocked() []DropdownRow {
	needle := strings.ToLower(strings.TrimSpace(d.query))
	rows := make([]DropdownRow, 0, len(d.options))
	for _, opt := range d.options {
		if needle != "" && !strings.Contains(strings.ToLower(opt.Name), needle) {
			continue
		}
		rows = append(rows, DropdownRow{Option: opt, Selected: d.value != nil && *d.value == opt.ID})
	}
	return rows
}

func findOption(opts []Option, id string) (Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
