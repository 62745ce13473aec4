// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/scroll.go
// Summary: Line feeds, scroll region handling and scrollback hand-off.
// Usage: Part of the Screen engine.

package screen

import (
	"github.com/framegrace/texelvt/cell"
	"github.com/framegrace/texelvt/scrollback"
)

// lineFeed advances the cursor one row, scrolling the region when the
// cursor sits on its bottom row.
func (s *Screen) lineFeed() {
	if s.cursorY == s.marginBottom {
		s.scrollUp(1)
	} else if s.cursorY < s.height-1 {
		s.cursorY++
	}
}

// reverseIndex moves the cursor one row up, scrolling the region down when
// the cursor sits on its top row.
func (s *Screen) reverseIndex() {
	if s.cursorY == s.marginTop {
		s.scrollDown(1)
	} else if s.cursorY > 0 {
		s.cursorY--
	}
}

// scrollUp shifts the scroll region up n rows. Rows leaving the top of the
// region enter the scrollback only when the region top is the grid top and
// the main buffer is active (true history scroll); partial-region scrolls
// and the alternate screen discard them.
func (s *Screen) scrollUp(n int) {
	if n <= 0 {
		return
	}
	span := s.marginBottom - s.marginTop + 1
	if n > span {
		n = span
	}
	record := s.marginTop == 0 && !s.inAlt
	for i := 0; i < n; i++ {
		if record {
			s.pushHistory(s.grid[s.marginTop], s.rowWrapped[s.marginTop])
		}
		copy(s.grid[s.marginTop:], s.grid[s.marginTop+1:s.marginBottom+1])
		copy(s.rowWrapped[s.marginTop:], s.rowWrapped[s.marginTop+1:s.marginBottom+1])
		s.grid[s.marginBottom] = blankRow(s.width, s.eraseStyle())
		s.rowWrapped[s.marginBottom] = false
	}
}

// scrollDown shifts the scroll region down n rows; rows leaving the bottom
// are discarded, vacated top rows are cleared.
func (s *Screen) scrollDown(n int) {
	if n <= 0 {
		return
	}
	span := s.marginBottom - s.marginTop + 1
	if n > span {
		n = span
	}
	for i := 0; i < n; i++ {
		copy(s.grid[s.marginTop+1:s.marginBottom+1], s.grid[s.marginTop:s.marginBottom])
		copy(s.rowWrapped[s.marginTop+1:s.marginBottom+1], s.rowWrapped[s.marginTop:s.marginBottom])
		s.grid[s.marginTop] = blankRow(s.width, s.eraseStyle())
		s.rowWrapped[s.marginTop] = false
	}
}

// pushHistory copies one evicted row into the scrollback (copy-on-scroll:
// the grid keeps mutating its own row, the pushed line never changes).
func (s *Screen) pushHistory(row []cell.Cell, wrapped bool) {
	line := scrollback.Line{
		Cells:   append([]cell.Cell(nil), row...),
		Wrapped: wrapped,
	}
	index := s.history.Evicted() + int64(s.history.Len())
	s.history.Push(line)
	if s.HistoryLine != nil {
		s.HistoryLine(index, line)
	}
}

// setMargins applies DECSTBM. Parameters are 1-based; 0 selects the grid
// edge. Invalid regions (top >= bottom after clamping) are ignored.
func (s *Screen) setMargins(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 || bottom > s.height {
		bottom = s.height
	}
	if top >= bottom {
		return
	}
	s.marginTop = top - 1
	s.marginBottom = bottom - 1
	s.moveTo(0, 0)
}

// eraseStyle is the style used to fill cleared cells: current background,
// no attributes (background color erase).
func (s *Screen) eraseStyle() cell.Style {
	return cell.Style{FG: cell.DefaultFG, BG: s.style.BG}
}
