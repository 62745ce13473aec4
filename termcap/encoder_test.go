// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termcap/encoder_test.go
// Summary: Byte-level checks for the xterm encoder, plus a round trip
// through the parser and screen to prove both halves agree.

package termcap_test

import (
	"testing"

	"github.com/framegrace/texelvt/cell"
	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/termcap"
)

func TestXTermMoveTo(t *testing.T) {
	var e termcap.XTerm
	if got := string(e.MoveTo(0, 0)); got != "\x1b[1;1H" {
		t.Errorf("MoveTo(0,0) = %q", got)
	}
	if got := string(e.MoveTo(4, 9)); got != "\x1b[5;10H" {
		t.Errorf("MoveTo(4,9) = %q", got)
	}
}

func TestXTermColors(t *testing.T) {
	var e termcap.XTerm
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"standard fg", string(e.SetForeground(cell.Color{Mode: cell.ColorModeStandard, Value: 1})), "\x1b[31m"},
		{"bright fg", string(e.SetForeground(cell.Color{Mode: cell.ColorModeStandard, Value: 11})), "\x1b[93m"},
		{"standard bg", string(e.SetBackground(cell.Color{Mode: cell.ColorModeStandard, Value: 4})), "\x1b[44m"},
		{"bright bg", string(e.SetBackground(cell.Color{Mode: cell.ColorModeStandard, Value: 12})), "\x1b[104m"},
		{"256 fg", string(e.SetForeground(cell.Color{Mode: cell.ColorMode256, Value: 196})), "\x1b[38;5;196m"},
		{"rgb bg", string(e.SetBackground(cell.Color{Mode: cell.ColorModeRGB, R: 1, G: 2, B: 3})), "\x1b[48;2;1;2;3m"},
		{"default fg", string(e.SetForeground(cell.Color{})), "\x1b[39m"},
		{"default bg", string(e.SetBackground(cell.Color{})), "\x1b[49m"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestXTermAttributes(t *testing.T) {
	var e termcap.XTerm
	got := string(e.SetAttributes(cell.AttrBold | cell.AttrUnderline))
	if got != "\x1b[0;1;4m" {
		t.Errorf("attrs = %q", got)
	}
	if got := string(e.SetAttributes(0)); got != "\x1b[0m" {
		t.Errorf("empty attrs = %q", got)
	}
}

func TestXTermCursorAndScreens(t *testing.T) {
	var e termcap.XTerm
	if got := string(e.ShowCursor(false)); got != "\x1b[?25l" {
		t.Errorf("hide = %q", got)
	}
	if got := string(e.ShowCursor(true)); got != "\x1b[?25h" {
		t.Errorf("show = %q", got)
	}
	if got := string(e.EnterAltScreen()); got != "\x1b[?1049h" {
		t.Errorf("enter alt = %q", got)
	}
	if got := string(e.ClearScreen()); got != "\x1b[H\x1b[2J" {
		t.Errorf("clear = %q", got)
	}
}

// Encoded output, fed back through the parser and screen, must reproduce
// the state it encodes.
func TestEncoderScreenRoundTrip(t *testing.T) {
	var e termcap.XTerm
	scr := screen.New(20, 5)
	par := parser.New()

	var stream []byte
	stream = append(stream, e.MoveTo(2, 4)...)
	stream = append(stream, e.SetAttributes(cell.AttrBold)...)
	stream = append(stream, e.SetForeground(cell.Color{Mode: cell.ColorMode256, Value: 99})...)
	stream = append(stream, 'X')
	stream = append(stream, e.Reset()...)
	scr.ApplyAll(par.Feed(stream))

	c := scr.Cell(4, 2)
	if c.Rune != 'X' {
		t.Fatalf("rune at (4,2) = %q", c.Rune)
	}
	if c.Style.Attr != cell.AttrBold {
		t.Errorf("attr = %v", c.Style.Attr)
	}
	if c.Style.FG.Mode != cell.ColorMode256 || c.Style.FG.Value != 99 {
		t.Errorf("FG = %+v", c.Style.FG)
	}
	x, y := scr.Cursor()
	if x != 5 || y != 2 {
		t.Errorf("cursor = (%d,%d)", x, y)
	}
}
