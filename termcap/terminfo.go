// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termcap/terminfo.go
// Summary: Encoder backed by the system terminfo database.

package termcap

import (
	"bytes"

	"github.com/xo/terminfo"

	"github.com/framegrace/texelvt/cell"
)

// Terminfo encodes operations using the capabilities of a terminfo entry.
// Capabilities the entry lacks fall back to the xterm encoding, as do RGB
// colors, which classic terminfo cannot express.
type Terminfo struct {
	ti       *terminfo.Terminfo
	fallback XTerm
}

// Load resolves a terminal name against the terminfo database.
func Load(term string) (*Terminfo, error) {
	ti, err := terminfo.Load(term)
	if err != nil {
		return nil, err
	}
	return &Terminfo{ti: ti}, nil
}

// ForTerm returns the best encoder for a terminal name: terminfo-backed
// when the entry resolves, plain xterm otherwise.
func ForTerm(term string) Encoder {
	if enc, err := Load(term); err == nil {
		return enc
	}
	return XTerm{}
}

func (t *Terminfo) cap(i int, args ...interface{}) []byte {
	var buf bytes.Buffer
	t.ti.Fprintf(&buf, i, args...)
	return buf.Bytes()
}

func (t *Terminfo) MoveTo(row, col int) []byte {
	if b := t.cap(terminfo.CursorAddress, row, col); len(b) > 0 {
		return b
	}
	return t.fallback.MoveTo(row, col)
}

func (t *Terminfo) SetForeground(c cell.Color) []byte {
	if c.Mode == cell.ColorModeStandard || c.Mode == cell.ColorMode256 {
		if int(c.Value) < t.ti.Num(terminfo.MaxColors) {
			if b := t.cap(terminfo.SetAForeground, int(c.Value)); len(b) > 0 {
				return b
			}
		}
	}
	return t.fallback.SetForeground(c)
}

func (t *Terminfo) SetBackground(c cell.Color) []byte {
	if c.Mode == cell.ColorModeStandard || c.Mode == cell.ColorMode256 {
		if int(c.Value) < t.ti.Num(terminfo.MaxColors) {
			if b := t.cap(terminfo.SetABackground, int(c.Value)); len(b) > 0 {
				return b
			}
		}
	}
	return t.fallback.SetBackground(c)
}

// SetAttributes uses the xterm encoding: terminfo's set_attributes takes
// nine positional arguments in an order that predates several of the
// attributes tracked here, so the SGR form is both simpler and wider.
func (t *Terminfo) SetAttributes(a cell.Attribute) []byte {
	return t.fallback.SetAttributes(a)
}

func (t *Terminfo) Reset() []byte {
	if b := t.cap(terminfo.ExitAttributeMode); len(b) > 0 {
		return b
	}
	return t.fallback.Reset()
}

func (t *Terminfo) ClearScreen() []byte {
	if b := t.cap(terminfo.ClearScreen); len(b) > 0 {
		return b
	}
	return t.fallback.ClearScreen()
}

func (t *Terminfo) ShowCursor(show bool) []byte {
	var b []byte
	if show {
		b = t.cap(terminfo.CursorNormal)
	} else {
		b = t.cap(terminfo.CursorInvisible)
	}
	if len(b) > 0 {
		return b
	}
	return t.fallback.ShowCursor(show)
}

func (t *Terminfo) EnterAltScreen() []byte {
	if b := t.cap(terminfo.EnterCaMode); len(b) > 0 {
		return b
	}
	return t.fallback.EnterAltScreen()
}

func (t *Terminfo) ExitAltScreen() []byte {
	if b := t.cap(terminfo.ExitCaMode); len(b) > 0 {
		return b
	}
	return t.fallback.ExitAltScreen()
}
