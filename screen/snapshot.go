// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/snapshot.go
// Summary: Immutable read views of the grid for renderers and tests.
// Usage: Snapshots stay valid while the screen keeps mutating.

package screen

import (
	"strings"

	"github.com/framegrace/texelvt/cell"
)

// Cursor is the renderer-facing cursor state.
type Cursor struct {
	X, Y    int
	Visible bool
	Shape   CursorShape
}

// Snapshot is a deep copy of the visible grid plus cursor state.
type Snapshot struct {
	Width, Height int
	Cells         [][]cell.Cell
	Cursor        Cursor
	Title         string
}

// Snapshot captures the current visible state. The copy is detached: later
// Apply calls do not alter it.
func (s *Screen) Snapshot() *Snapshot {
	cells := make([][]cell.Cell, s.height)
	for y := range cells {
		cells[y] = append([]cell.Cell(nil), s.grid[y]...)
	}
	return &Snapshot{
		Width:  s.width,
		Height: s.height,
		Cells:  cells,
		Cursor: Cursor{X: s.cursorX, Y: s.cursorY, Visible: s.cursorVisible, Shape: s.cursorShape},
		Title:  s.title,
	}
}

// Row returns a copy of one visible row; nil when out of range.
func (s *Screen) Row(y int) []cell.Cell {
	if y < 0 || y >= s.height {
		return nil
	}
	return append([]cell.Cell(nil), s.grid[y]...)
}

// RowText renders one visible row as plain text with trailing blanks
// trimmed. Continuation cells contribute nothing.
func (s *Screen) RowText(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	return rowText(s.grid[y], false)
}

// Text renders the whole visible grid, one line per row.
func (s *Screen) Text() string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.RowText(y))
	}
	return b.String()
}
