// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/selection.go
// Summary: Materializes a rectangular cursor span as plain text.
// Usage: Called by clipboard integrations; transport is out of scope.

package screen

import (
	"strings"

	"github.com/framegrace/texelvt/cell"
)

// Position addresses a grid cell as (row, col) in 0-based coordinates.
type Position struct {
	Row, Col int
}

// Less orders positions in reading order.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// SelectionText returns the text covered by the span from start to end
// (inclusive, reading order, either order accepted). Wide glyphs are
// emitted once even when only one of their two cells is covered; rows that
// soft-wrapped join without a newline, rows that ended hard get one.
func (s *Screen) SelectionText(start, end Position) string {
	if end.Less(start) {
		start, end = end, start
	}
	var b strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		if row < 0 || row >= s.height {
			continue
		}
		from, to := 0, s.width-1
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row {
			to = end.Col
		}
		if from < 0 {
			from = 0
		}
		if to >= s.width {
			to = s.width - 1
		}
		// Pull the selection edge back onto the leader of a wide pair.
		if from > 0 && s.grid[row][from].Continuation {
			from--
		}
		b.WriteString(rowText(s.grid[row][from:to+1], s.rowWrapped[row]))
		if row < end.Row && !s.rowWrapped[row] {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// rowText renders one covered row span, trimming trailing blanks unless
// the row wraps into the next.
func rowText(cells []cell.Cell, wrapped bool) string {
	end := len(cells)
	if !wrapped {
		for end > 0 && cells[end-1].IsBlank() {
			end--
		}
	}
	var b strings.Builder
	for _, c := range cells[:end] {
		b.WriteString(c.Content())
	}
	return b.String()
}
