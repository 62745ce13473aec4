// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollback/buffer.go
// Summary: Bounded FIFO history of rows scrolled off the top of the grid.
// Usage: Owned by the screen engine; read by viewers and the search index.

package scrollback

import "github.com/framegrace/texelvt/cell"

// DefaultCapacity matches the scrollback depth used by common terminals.
const DefaultCapacity = 2000

// Line is one historical row. Lines are immutable once pushed: a push only
// appends or evicts, it never edits existing entries, so readers iterating
// across pushes always observe consistent rows.
type Line struct {
	Cells []cell.Cell

	// Wrapped is true when this row was a soft continuation of the
	// previous logical line (auto-wrap), false when it ended with an
	// explicit newline.
	Wrapped bool
}

// Text returns the row's contents as a plain string with trailing blanks
// removed. Continuation cells of wide glyphs contribute nothing.
func (l Line) Text() string {
	end := len(l.Cells)
	for end > 0 && l.Cells[end-1].IsBlank() {
		end--
	}
	var out []byte
	for _, c := range l.Cells[:end] {
		out = append(out, c.Content()...)
	}
	return string(out)
}

// Buffer is a bounded ring of Lines. Index 0 is always the oldest retained
// line; indices are stable only until the next eviction.
type Buffer struct {
	lines    []Line
	capacity int
	head     int // next write position
	count    int

	// evicted counts lines dropped from the front since creation, so
	// consumers can maintain global line numbering across evictions.
	evicted int64
}

// New creates a scrollback buffer retaining at most capacity lines.
// Non-positive capacities fall back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		lines:    make([]Line, capacity),
		capacity: capacity,
	}
}

// Push appends a line, evicting the oldest one when the buffer is full.
func (b *Buffer) Push(l Line) {
	if b.count == b.capacity {
		b.evicted++
	}
	b.lines[b.head] = l
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int { return b.count }

// Cap returns the maximum number of retained lines.
func (b *Buffer) Cap() int { return b.capacity }

// Evicted returns how many lines have been dropped since creation.
func (b *Buffer) Evicted() int64 { return b.evicted }

// Line returns the line at logical index i, 0 being the oldest retained.
// Out-of-range indices return an empty line.
func (b *Buffer) Line(i int) Line {
	if i < 0 || i >= b.count {
		return Line{}
	}
	start := (b.head - b.count + b.capacity) % b.capacity
	return b.lines[(start+i)%b.capacity]
}

// Each calls fn for every retained line starting at logical index from,
// stopping early when fn returns false.
func (b *Buffer) Each(from int, fn func(i int, l Line) bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < b.count; i++ {
		if !fn(i, b.Line(i)) {
			return
		}
	}
}

// SetCapacity resizes the buffer, discarding the oldest lines on shrink.
func (b *Buffer) SetCapacity(n int) {
	if n <= 0 || n == b.capacity {
		return
	}
	keep := b.count
	if keep > n {
		b.evicted += int64(keep - n)
		keep = n
	}
	fresh := make([]Line, n)
	for i := 0; i < keep; i++ {
		fresh[i] = b.Line(b.count - keep + i)
	}
	b.lines = fresh
	b.capacity = n
	b.head = keep % n
	b.count = keep
}

// Clear drops all retained lines.
func (b *Buffer) Clear() {
	for i := range b.lines {
		b.lines[i] = Line{}
	}
	b.evicted += int64(b.count)
	b.head = 0
	b.count = 0
}
