// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/cursor.go
// Summary: Cursor movement, clamping and DECSC/DECRC save state.
// Usage: Part of the Screen engine.

package screen

// moveTo positions the cursor at (row, col) in grid coordinates, clamping
// to bounds. In origin mode the coordinates are relative to the scroll
// region and the cursor cannot leave it.
func (s *Screen) moveTo(row, col int) {
	if s.origin {
		row += s.marginTop
		if row > s.marginBottom {
			row = s.marginBottom
		}
		if row < s.marginTop {
			row = s.marginTop
		}
	}
	if row < 0 {
		row = 0
	}
	if row >= s.height {
		row = s.height - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= s.width {
		col = s.width - 1
	}
	if row != s.cursorY || col != s.cursorX {
		s.wrapNext = false
	}
	s.cursorY, s.cursorX = row, col
}

// moveUp moves up n rows, stopping at the region top when the cursor
// started inside the region, otherwise at the grid top.
func (s *Screen) moveUp(n int) {
	s.wrapNext = false
	limit := 0
	if s.cursorY >= s.marginTop {
		limit = s.marginTop
	}
	s.cursorY -= n
	if s.cursorY < limit {
		s.cursorY = limit
	}
}

// moveDown is the symmetric counterpart, stopping at the region bottom.
func (s *Screen) moveDown(n int) {
	s.wrapNext = false
	limit := s.height - 1
	if s.cursorY <= s.marginBottom {
		limit = s.marginBottom
	}
	s.cursorY += n
	if s.cursorY > limit {
		s.cursorY = limit
	}
}

func (s *Screen) moveForward(n int) {
	s.wrapNext = false
	s.cursorX += n
	if s.cursorX >= s.width {
		s.cursorX = s.width - 1
	}
}

func (s *Screen) moveBackward(n int) {
	s.wrapNext = false
	s.cursorX -= n
	if s.cursorX < 0 {
		s.cursorX = 0
	}
}

// setColumn moves to an absolute column without changing the row (CHA/HPA).
func (s *Screen) setColumn(col int) {
	s.wrapNext = false
	if col < 0 {
		col = 0
	}
	if col >= s.width {
		col = s.width - 1
	}
	s.cursorX = col
}

// setRow moves to an absolute row without changing the column (VPA).
func (s *Screen) setRow(row int) {
	s.wrapNext = false
	if s.origin {
		row += s.marginTop
		if row > s.marginBottom {
			row = s.marginBottom
		}
	}
	if row < 0 {
		row = 0
	}
	if row >= s.height {
		row = s.height - 1
	}
	s.cursorY = row
}

func (s *Screen) saveCursor() {
	saved := savedCursor{
		x:        s.cursorX,
		y:        s.cursorY,
		style:    s.style,
		origin:   s.origin,
		wrapNext: s.wrapNext,
	}
	s.savedPrimary = saved
	if s.inAlt {
		s.savedAlt = saved
	} else {
		s.savedMain = saved
	}
}

func (s *Screen) restoreCursor() {
	saved := s.savedPrimary
	s.style = saved.style
	s.origin = saved.origin
	s.wrapNext = saved.wrapNext
	x, y := saved.x, saved.y
	if x >= s.width {
		x = s.width - 1
	}
	if y >= s.height {
		y = s.height - 1
	}
	s.cursorX, s.cursorY = x, y
}
