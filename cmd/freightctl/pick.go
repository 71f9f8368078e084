package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/freightdesk/freightdesk/internal/ui"
)

const maxVisibleRows = 10

var errPickCancelled = errors.New("selection cancelled")

// picker turns raw keystrokes into dropdown operations.
type picker struct {
	dropdown *ui.Dropdown
	cursor   int
	chosen   *ui.Option
	done     bool
}

// handle applies one key read from the terminal.
func (p *picker) handle(key []byte) {
	view := p.dropdown.View()
	switch {
	case len(key) == 0:
	case string(key) == "\x1b[A":
		if p.cursor > 0 {
			p.cursor--
		}
	case string(key) == "\x1b[B":
		if p.cursor < len(view.Rows)-1 {
			p.cursor++
		}
	case key[0] == 0x03 || string(key) == "\x1b":
		p.dropdown.ClickOutside()
		p.done = true
	case key[0] == '\r' || key[0] == '\n':
		if p.cursor < len(view.Rows) {
			row := view.Rows[p.cursor].Option
			if p.dropdown.Select(row.ID) {
				p.chosen = &row
				p.done = true
			}
		}
	case key[0] == 0x15:
		p.dropdown.Clear()
		p.dropdown.Type("")
		p.cursor = 0
	case key[0] == 0x7f || key[0] == 0x08:
		q := []rune(view.Query)
		if len(q) > 0 {
			p.dropdown.Type(string(q[:len(q)-1]))
			p.cursor = 0
		}
	case key[0] >= 0x20 && key[0] != 0x1b:
		p.dropdown.Type(view.Query + string(key))
		p.cursor = 0
	}
}

// render draws the panel. Raw mode needs explicit carriage returns.
func (p *picker) render(w io.Writer) {
	view := p.dropdown.View()
	var b strings.Builder
	b.WriteString("\r\x1b[J")
	fmt.Fprintf(&b, "> %s\r\n", view.Query)
	if view.Message != "" {
		fmt.Fprintf(&b, "  %s\r\n", view.Message)
	}
	for i, row := range view.Rows {
		if i >= maxVisibleRows {
			fmt.Fprintf(&b, "  ... %d more\r\n", len(view.Rows)-maxVisibleRows)
			break
		}
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s\r\n", marker, row.Name)
	}
	lines := strings.Count(b.String(), "\r\n")
	fmt.Fprintf(&b, "\x1b[%dA", lines)
	_, _ = io.WriteString(w, b.String())
}

func pick(ctx context.Context, b binding, stdout io.Writer) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("pick needs an interactive terminal")
	}

	redraw := make(chan struct{}, 1)
	notify := func() {
		select {
		case redraw <- struct{}{}:
		default:
		}
	}

	var dd *ui.Dropdown
	var mu sync.Mutex
	var searchErr error
	dd = ui.NewDropdown(ui.DropdownConfig{
		Placeholder: "Search...",
		OnSearch: func(q string) {
			dd.SetLoading(true)
			notify()
			opts, err := b.search(ctx, q)
			mu.Lock()
			searchErr = err
			mu.Unlock()
			if err == nil {
				dd.SetOptions(opts)
			}
			dd.SetLoading(false)
			notify()
		},
	})
	defer dd.Close()
	dd.Open()
	dd.Type("")

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	keys := make(chan []byte)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			keys <- append([]byte(nil), buf[:n]...)
		}
	}()

	p := &picker{dropdown: dd}
	p.render(stdout)
	for !p.done {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-redraw:
		case key, ok := <-keys:
			if !ok {
				return io.ErrUnexpectedEOF
			}
			p.handle(key)
		}
		p.render(stdout)
	}
	_, _ = io.WriteString(stdout, "\r\x1b[J")
	_ = term.Restore(fd, state)

	mu.Lock()
	defer mu.Unlock()
	if p.chosen == nil {
		if searchErr != nil {
			return searchErr
		}
		return errPickCancelled
	}
	fmt.Fprintf(stdout, "%s\t%s\n", p.chosen.ID, p.chosen.Name)
	return nil
}
