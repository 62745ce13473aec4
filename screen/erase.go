// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/erase.go
// Summary: ED/EL/ECH clearing and ICH/DCH/IL/DL editing operations.
// Usage: Part of the Screen engine.

package screen

import "github.com/framegrace/texelvt/cell"

// clearCells blanks the half-open column range [from, to) on row y with the
// erase style, dissolving any wide pair that straddles a boundary.
func (s *Screen) clearCells(y, from, to int) {
	if y < 0 || y >= s.height {
		return
	}
	if from < 0 {
		from = 0
	}
	if to > s.width {
		to = s.width
	}
	if from >= to {
		return
	}
	s.clearPair(y, from)
	s.clearPair(y, to-1)
	style := s.eraseStyle()
	for x := from; x < to; x++ {
		s.grid[y][x] = cell.Blank(style)
	}
}

// eraseInLine implements EL: 0 = cursor to end, 1 = start to cursor,
// 2 = whole line. Unknown modes are ignored.
func (s *Screen) eraseInLine(mode int) {
	switch mode {
	case 0:
		s.clearCells(s.cursorY, s.cursorX, s.width)
	case 1:
		s.clearCells(s.cursorY, 0, s.cursorX+1)
	case 2:
		s.clearCells(s.cursorY, 0, s.width)
		s.rowWrapped[s.cursorY] = false
	}
}

// eraseInDisplay implements ED: 0 = cursor to end of screen, 1 = start of
// screen to cursor, 2 = whole screen, 3 = whole screen plus scrollback.
func (s *Screen) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseInLine(0)
		for y := s.cursorY + 1; y < s.height; y++ {
			s.clearCells(y, 0, s.width)
			s.rowWrapped[y] = false
		}
	case 1:
		s.eraseInLine(1)
		for y := 0; y < s.cursorY; y++ {
			s.clearCells(y, 0, s.width)
			s.rowWrapped[y] = false
		}
	case 2:
		for y := 0; y < s.height; y++ {
			s.clearCells(y, 0, s.width)
			s.rowWrapped[y] = false
		}
	case 3:
		for y := 0; y < s.height; y++ {
			s.clearCells(y, 0, s.width)
			s.rowWrapped[y] = false
		}
		s.history.Clear()
	}
}

// eraseCharacters implements ECH: blank n cells from the cursor without
// shifting the remainder of the line.
func (s *Screen) eraseCharacters(n int) {
	if n <= 0 {
		n = 1
	}
	s.clearCells(s.cursorY, s.cursorX, s.cursorX+n)
}

// insertCharacters implements ICH: open n blank cells at the cursor,
// pushing the tail of the line right.
func (s *Screen) insertCharacters(n int) {
	if n <= 0 {
		n = 1
	}
	s.clearPair(s.cursorY, s.cursorX)
	s.shiftRight(s.cursorY, s.cursorX, n)
}

// deleteCharacters implements DCH: remove n cells at the cursor, pulling
// the tail left and back-filling with blanks.
func (s *Screen) deleteCharacters(n int) {
	if n <= 0 {
		n = 1
	}
	if n > s.width-s.cursorX {
		n = s.width - s.cursorX
	}
	s.clearPair(s.cursorY, s.cursorX)
	s.clearPair(s.cursorY, s.cursorX+n-1)
	row := s.grid[s.cursorY]
	copy(row[s.cursorX:], row[s.cursorX+n:])
	style := s.eraseStyle()
	for x := s.width - n; x < s.width; x++ {
		row[x] = cell.Blank(style)
	}
	// A leader pulled against the right edge loses its continuation.
	if row[s.width-1].Width == 2 {
		row[s.width-1] = cell.Blank(row[s.width-1].Style)
	}
}

// insertLines implements IL: open n blank rows at the cursor inside the
// scroll region. No effect outside the region.
func (s *Screen) insertLines(n int) {
	if s.cursorY < s.marginTop || s.cursorY > s.marginBottom {
		return
	}
	if n <= 0 {
		n = 1
	}
	if n > s.marginBottom-s.cursorY+1 {
		n = s.marginBottom - s.cursorY + 1
	}
	for i := 0; i < n; i++ {
		copy(s.grid[s.cursorY+1:s.marginBottom+1], s.grid[s.cursorY:s.marginBottom])
		copy(s.rowWrapped[s.cursorY+1:s.marginBottom+1], s.rowWrapped[s.cursorY:s.marginBottom])
		s.grid[s.cursorY] = blankRow(s.width, s.eraseStyle())
		s.rowWrapped[s.cursorY] = false
	}
	s.cursorX = 0
}

// deleteLines implements DL: remove n rows at the cursor inside the scroll
// region, pulling the region tail up.
func (s *Screen) deleteLines(n int) {
	if s.cursorY < s.marginTop || s.cursorY > s.marginBottom {
		return
	}
	if n <= 0 {
		n = 1
	}
	if n > s.marginBottom-s.cursorY+1 {
		n = s.marginBottom - s.cursorY + 1
	}
	for i := 0; i < n; i++ {
		copy(s.grid[s.cursorY:s.marginBottom], s.grid[s.cursorY+1:s.marginBottom+1])
		copy(s.rowWrapped[s.cursorY:s.marginBottom], s.rowWrapped[s.cursorY+1:s.marginBottom+1])
		s.grid[s.marginBottom] = blankRow(s.width, s.eraseStyle())
		s.rowWrapped[s.marginBottom] = false
	}
	s.cursorX = 0
}
