// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/tcell.go
// Summary: Draws screen snapshots onto a tcell.Screen.
// Usage: The interactive host calls Draw after each batch of input; the
// same path runs against a SimulationScreen in tests.

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/cell"
	"github.com/framegrace/texelvt/screen"
)

// Draw paints a snapshot onto ts and positions the cursor. The caller is
// responsible for ts.Show.
func Draw(ts tcell.Screen, snap *screen.Snapshot) {
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			c := snap.Cells[y][x]
			if c.Continuation {
				continue // the leader's SetContent covers this column
			}
			mainc := c.Rune
			if mainc == 0 {
				mainc = ' '
			}
			ts.SetContent(x, y, mainc, c.Combining, TcellStyle(c.Style))
		}
	}
	if snap.Cursor.Visible {
		ts.ShowCursor(snap.Cursor.X, snap.Cursor.Y)
		ts.SetCursorStyle(cursorStyle(snap.Cursor.Shape))
	} else {
		ts.HideCursor()
	}
}

// TcellStyle converts a cell style to its tcell equivalent.
func TcellStyle(st cell.Style) tcell.Style {
	fg := st.FG
	dimFlag := false
	if st.Attr&cell.AttrDim != 0 {
		if st.FG.Mode == cell.ColorModeDefault || st.BG.Mode == cell.ColorModeDefault {
			// Theme colors are unknown here; let the terminal dim.
			dimFlag = true
		} else {
			fg = dimColor(st.FG, st.BG)
		}
	}
	s := tcell.StyleDefault.
		Foreground(TcellColor(fg)).
		Background(TcellColor(st.BG))
	if st.Attr&cell.AttrBold != 0 {
		s = s.Bold(true)
	}
	if dimFlag {
		s = s.Dim(true)
	}
	if st.Attr&cell.AttrItalic != 0 {
		s = s.Italic(true)
	}
	if st.Attr&(cell.AttrUnderline|cell.AttrDoubleUnderline|cell.AttrCurlyUnderline) != 0 {
		s = s.Underline(true)
	}
	if st.Attr&cell.AttrBlink != 0 {
		s = s.Blink(true)
	}
	if st.Attr&cell.AttrReverse != 0 {
		s = s.Reverse(true)
	}
	if st.Attr&cell.AttrStrike != 0 {
		s = s.StrikeThrough(true)
	}
	return s
}

// TcellColor converts a cell color to a tcell color.
func TcellColor(c cell.Color) tcell.Color {
	switch c.Mode {
	case cell.ColorModeStandard, cell.ColorMode256:
		return tcell.PaletteColor(int(c.Value))
	case cell.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

// dimColor fades a foreground toward its background. Light backgrounds
// tolerate a longer step before faint text stops being legible.
func dimColor(fg, bg cell.Color) cell.Color {
	t := 0.4
	if cell.Luminance(bg) > 0.5 {
		t = 0.55
	}
	return cell.Blend(fg, bg, t)
}

func cursorStyle(shape screen.CursorShape) tcell.CursorStyle {
	switch shape {
	case screen.CursorShapeUnderline:
		return tcell.CursorStyleSteadyUnderline
	case screen.CursorShapeBar:
		return tcell.CursorStyleSteadyBar
	default:
		return tcell.CursorStyleSteadyBlock
	}
}
