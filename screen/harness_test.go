// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/harness_test.go
// Summary: Test driver coupling parser and screen the way the host does.
// Coordinates are 1-indexed to match VT conventions.

package screen_test

import (
	"fmt"
	"testing"

	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/screen"
)

type driver struct {
	t   *testing.T
	scr *screen.Screen
	par *parser.Parser
	out []byte
}

func newDriver(t *testing.T, cols, rows int, opts ...screen.Option) *driver {
	d := &driver{t: t, par: parser.New()}
	opts = append(opts, screen.WithOutput(func(b []byte) { d.out = append(d.out, b...) }))
	d.scr = screen.New(cols, rows, opts...)
	return d
}

func (d *driver) feed(format string, args ...interface{}) {
	d.t.Helper()
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	d.scr.ApplyAll(d.par.Feed([]byte(s)))
}

// cursor returns the 1-indexed cursor position (col, row).
func (d *driver) cursor() (int, int) {
	x, y := d.scr.Cursor()
	return x + 1, y + 1
}

func (d *driver) assertCursor(col, row int) {
	d.t.Helper()
	x, y := d.cursor()
	if x != col || y != row {
		d.t.Errorf("cursor = (%d,%d), want (%d,%d)", x, y, col, row)
	}
}

// row returns the 1-indexed row rendered as text with trailing blanks
// trimmed.
func (d *driver) row(y int) string {
	return d.scr.RowText(y - 1)
}

func (d *driver) assertRow(y int, want string) {
	d.t.Helper()
	if got := d.row(y); got != want {
		d.t.Errorf("row %d = %q, want %q", y, got, want)
	}
}

// char returns the rune at 1-indexed (col, row), ' ' for blanks.
func (d *driver) char(col, row int) rune {
	c := d.scr.Cell(col-1, row-1)
	if c.Rune == 0 {
		return ' '
	}
	return c.Rune
}

func (d *driver) reply() string {
	out := string(d.out)
	d.out = nil
	return out
}
