// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termcap/encoder.go
// Summary: Encodes abstract terminal operations as concrete escape bytes.
// Usage: The output-generation half of the core: renderers and the capture
// tool emit through an Encoder instead of hand-building sequences.

package termcap

import (
	"fmt"

	"github.com/framegrace/texelvt/cell"
)

// Encoder translates abstract operations into the escape bytes a given
// terminal type understands. Implementations must be stateless: the same
// call always yields the same bytes.
type Encoder interface {
	// MoveTo addresses the cursor at 0-based (row, col).
	MoveTo(row, col int) []byte
	// SetForeground and SetBackground select colors for subsequent text.
	SetForeground(c cell.Color) []byte
	SetBackground(c cell.Color) []byte
	// SetAttributes enables the given attribute set from a clean slate.
	SetAttributes(a cell.Attribute) []byte
	// Reset clears colors and attributes.
	Reset() []byte
	// ClearScreen erases the display and homes the cursor.
	ClearScreen() []byte
	// ShowCursor toggles cursor visibility.
	ShowCursor(show bool) []byte
	// EnterAltScreen and ExitAltScreen switch the alternate buffer.
	EnterAltScreen() []byte
	ExitAltScreen() []byte
}

// XTerm encodes operations using the de-facto xterm sequences. It is the
// fallback when no terminfo entry is available and the reference encoding
// used in tests.
type XTerm struct{}

func (XTerm) MoveTo(row, col int) []byte {
	return []byte(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
}

func (XTerm) SetForeground(c cell.Color) []byte { return sgrColor(c, false) }
func (XTerm) SetBackground(c cell.Color) []byte { return sgrColor(c, true) }

func sgrColor(c cell.Color, bg bool) []byte {
	base := 38
	def := 39
	if bg {
		base = 48
		def = 49
	}
	switch c.Mode {
	case cell.ColorModeStandard:
		v := int(c.Value)
		if v < 8 {
			return []byte(fmt.Sprintf("\x1b[%dm", base-8+v))
		}
		return []byte(fmt.Sprintf("\x1b[%dm", base+52+v-8)) // 90-97 / 100-107
	case cell.ColorMode256:
		return []byte(fmt.Sprintf("\x1b[%d;5;%dm", base, c.Value))
	case cell.ColorModeRGB:
		return []byte(fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base, c.R, c.G, c.B))
	default:
		return []byte(fmt.Sprintf("\x1b[%dm", def))
	}
}

func (XTerm) SetAttributes(a cell.Attribute) []byte {
	out := []byte("\x1b[0")
	attrs := []struct {
		bit  cell.Attribute
		code string
	}{
		{cell.AttrBold, "1"},
		{cell.AttrDim, "2"},
		{cell.AttrItalic, "3"},
		{cell.AttrUnderline, "4"},
		{cell.AttrBlink, "5"},
		{cell.AttrReverse, "7"},
		{cell.AttrInvisible, "8"},
		{cell.AttrStrike, "9"},
		{cell.AttrDoubleUnderline, "21"},
	}
	for _, at := range attrs {
		if a&at.bit != 0 {
			out = append(out, ';')
			out = append(out, at.code...)
		}
	}
	return append(out, 'm')
}

func (XTerm) Reset() []byte       { return []byte("\x1b[0m") }
func (XTerm) ClearScreen() []byte { return []byte("\x1b[H\x1b[2J") }

func (XTerm) ShowCursor(show bool) []byte {
	if show {
		return []byte("\x1b[?25h")
	}
	return []byte("\x1b[?25l")
}

func (XTerm) EnterAltScreen() []byte { return []byte("\x1b[?1049h") }
func (XTerm) ExitAltScreen() []byte  { return []byte("\x1b[?1049l") }
