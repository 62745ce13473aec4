// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/print.go
// Summary: Glyph placement: auto-wrap, wide-character pairing, insert mode.
// Usage: Part of the Screen engine.

package screen

import (
	"github.com/framegrace/texelvt/cell"
)

const zwj = '\u200d'

// placeGrapheme writes one grapheme at the cursor. Width 2 glyphs occupy a
// leader plus a continuation cell and never split across rows: printing a
// wide glyph in the last column pads that column and wraps first.
func (s *Screen) placeGrapheme(g string, w int) {
	if g == "" {
		return
	}
	if w == 0 {
		s.attachCombining(g)
		return
	}
	if w > s.width {
		// The grid is narrower than the glyph: degrade instead of
		// splitting it across rows.
		g, w = "\ufffd", 1
	}
	if s.mergeJoined(g) {
		return
	}
	s.lastGrapheme, s.lastWidth = g, w

	if s.wrapNext {
		s.rowWrapped[s.cursorY] = true
		s.cursorX = 0
		s.lineFeed()
		s.wrapNext = false
	}

	if w == 2 && s.cursorX == s.width-1 {
		if !s.autoWrap {
			// Wrapping disabled: squeeze the glyph against the edge.
			s.cursorX = s.width - 2
		} else {
			// Pad the dangling column, then wrap before placing.
			s.clearPair(s.cursorY, s.cursorX)
			s.grid[s.cursorY][s.cursorX] = cell.Blank(s.style)
			s.rowWrapped[s.cursorY] = true
			s.cursorX = 0
			s.lineFeed()
		}
	}

	if s.insert {
		s.shiftRight(s.cursorY, s.cursorX, w)
	}

	runes := []rune(g)
	c := cell.Cell{Rune: runes[0], Width: w, Style: s.style}
	if len(runes) > 1 {
		c.Combining = append([]rune(nil), runes[1:]...)
	}

	s.clearPair(s.cursorY, s.cursorX)
	s.grid[s.cursorY][s.cursorX] = c
	if w == 2 {
		s.clearPair(s.cursorY, s.cursorX+1)
		s.grid[s.cursorY][s.cursorX+1] = cell.Cell{Style: s.style, Continuation: true}
	}

	last := s.cursorX + w - 1
	if last >= s.width-1 {
		s.cursorX = s.width - 1
		if s.autoWrap {
			s.wrapNext = true
		}
	} else {
		s.cursorX += w
	}
}

// attachCombining merges a zero-width grapheme into the most recently
// printed cell instead of occupying a new one.
func (s *Screen) attachCombining(g string) {
	x, y, ok := s.combiningTarget()
	if !ok {
		return
	}
	target := s.grid[y][x]
	for _, r := range g {
		target = target.WithCombining(r)
	}
	s.grid[y][x] = target
}

// mergeJoined folds a glyph into the preceding cell when that cell's
// cluster ends with a zero-width joiner, so ZWJ emoji sequences stay in one
// cell. The merge is skipped when the joined cluster would outgrow the
// columns the cell already occupies.
func (s *Screen) mergeJoined(g string) bool {
	x, y, ok := s.combiningTarget()
	if !ok {
		return false
	}
	prev := s.grid[y][x]
	if n := len(prev.Combining); n == 0 || prev.Combining[n-1] != zwj {
		return false
	}
	merged := prev
	for _, r := range g {
		merged = merged.WithCombining(r)
	}
	if cell.GraphemeWidth(merged.Content()) > prev.Width {
		return false
	}
	s.grid[y][x] = merged
	return true
}

// combiningTarget locates the cell behind the cursor that zero-width input
// attaches to, stepping over continuation halves and honoring a pending
// wrap.
func (s *Screen) combiningTarget() (int, int, bool) {
	x, y := s.cursorX, s.cursorY
	if !s.wrapNext {
		x--
	}
	if x < 0 {
		if y == 0 {
			return 0, 0, false
		}
		y--
		x = s.width - 1
	}
	if s.grid[y][x].Continuation {
		x--
		if x < 0 {
			return 0, 0, false
		}
	}
	if s.grid[y][x].Rune == 0 {
		return 0, 0, false
	}
	return x, y, true
}

// clearPair removes the partner half of a wide glyph when position (y,x)
// holds either side of one, preventing dangling half-glyph artifacts.
func (s *Screen) clearPair(y, x int) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	c := s.grid[y][x]
	if c.Continuation && x > 0 && s.grid[y][x-1].Width == 2 {
		s.grid[y][x-1] = cell.Blank(s.grid[y][x-1].Style)
	}
	if c.Width == 2 && x+1 < s.width && s.grid[y][x+1].Continuation {
		s.grid[y][x+1] = cell.Blank(s.grid[y][x+1].Style)
	}
}

// shiftRight makes room for n cells at (y,x), dropping cells pushed past
// the right edge (IRM insert mode and ICH).
func (s *Screen) shiftRight(y, x, n int) {
	if n <= 0 {
		return
	}
	row := s.grid[y]
	if x+n >= s.width {
		for i := x; i < s.width; i++ {
			row[i] = cell.Blank(s.style)
		}
		return
	}
	copy(row[x+n:], row[x:s.width-n])
	for i := x; i < x+n && i < s.width; i++ {
		row[i] = cell.Blank(s.style)
	}
	// A continuation stranded at the right edge loses its leader.
	if s.width > 0 && row[s.width-1].Width == 2 {
		row[s.width-1] = cell.Blank(row[s.width-1].Style)
	}
}

func (s *Screen) carriageReturn() {
	s.wrapNext = false
	s.cursorX = 0
}

func (s *Screen) backspace() {
	s.wrapNext = false
	if s.cursorX > 0 {
		s.cursorX--
	}
}

// tab advances the cursor to the next tab stop, or the last column when
// none remain.
func (s *Screen) tab() {
	s.wrapNext = false
	for x := s.cursorX + 1; x < s.width; x++ {
		if s.tabStops[x] {
			s.cursorX = x
			return
		}
	}
	s.cursorX = s.width - 1
}

// backTab moves the cursor to the previous tab stop (CBT).
func (s *Screen) backTab() {
	s.wrapNext = false
	for x := s.cursorX - 1; x > 0; x-- {
		if s.tabStops[x] {
			s.cursorX = x
			return
		}
	}
	s.cursorX = 0
}

// repeatLast implements REP: repeat the previous graphic character n times.
func (s *Screen) repeatLast(n int) {
	if s.lastGrapheme == "" {
		return
	}
	for i := 0; i < n; i++ {
		s.placeGrapheme(s.lastGrapheme, s.lastWidth)
	}
}
