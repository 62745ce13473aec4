// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollback/buffer_test.go
// Summary: Ring buffer tests: ordering, eviction accounting, resize.

package scrollback

import (
	"fmt"
	"testing"

	"github.com/framegrace/texelvt/cell"
)

func lineOf(text string) Line {
	cells := make([]cell.Cell, len(text))
	for i, r := range text {
		cells[i] = cell.Cell{Rune: r, Width: 1, Style: cell.DefaultStyle()}
	}
	return Line{Cells: cells}
}

func TestPushAndOrder(t *testing.T) {
	b := New(5)
	for i := 0; i < 3; i++ {
		b.Push(lineOf(fmt.Sprintf("l%d", i)))
	}
	if b.Len() != 3 {
		t.Fatalf("len = %d", b.Len())
	}
	for i := 0; i < 3; i++ {
		if got := b.Line(i).Text(); got != fmt.Sprintf("l%d", i) {
			t.Errorf("line %d = %q", i, got)
		}
	}
}

func TestEvictionKeepsNewest(t *testing.T) {
	b := New(3)
	for i := 0; i < 10; i++ {
		b.Push(lineOf(fmt.Sprintf("l%d", i)))
	}
	if b.Len() != 3 || b.Evicted() != 7 {
		t.Fatalf("len = %d evicted = %d", b.Len(), b.Evicted())
	}
	if got := b.Line(0).Text(); got != "l7" {
		t.Errorf("oldest = %q, want l7", got)
	}
	if got := b.Line(2).Text(); got != "l9" {
		t.Errorf("newest = %q, want l9", got)
	}
}

func TestGlobalNumbering(t *testing.T) {
	b := New(4)
	for i := 0; i < 9; i++ {
		b.Push(lineOf(fmt.Sprintf("l%d", i)))
	}
	// Global index of retained line i is Evicted()+i.
	for i := 0; i < b.Len(); i++ {
		want := fmt.Sprintf("l%d", b.Evicted()+int64(i))
		if got := b.Line(i).Text(); got != want {
			t.Errorf("line %d = %q, want %q", i, got, want)
		}
	}
}

func TestOutOfRangeLineIsEmpty(t *testing.T) {
	b := New(3)
	b.Push(lineOf("x"))
	if got := b.Line(5).Text(); got != "" {
		t.Errorf("out of range = %q", got)
	}
	if got := b.Line(-1).Text(); got != "" {
		t.Errorf("negative index = %q", got)
	}
}

func TestSetCapacityShrinkKeepsNewest(t *testing.T) {
	b := New(5)
	for i := 0; i < 5; i++ {
		b.Push(lineOf(fmt.Sprintf("l%d", i)))
	}
	b.SetCapacity(2)
	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("len = %d cap = %d", b.Len(), b.Cap())
	}
	if got := b.Line(0).Text(); got != "l3" {
		t.Errorf("oldest after shrink = %q", got)
	}
	if b.Evicted() != 3 {
		t.Errorf("evicted = %d, want 3", b.Evicted())
	}
}

func TestSetCapacityGrow(t *testing.T) {
	b := New(2)
	b.Push(lineOf("a"))
	b.Push(lineOf("b"))
	b.SetCapacity(5)
	b.Push(lineOf("c"))
	if b.Len() != 3 || b.Evicted() != 0 {
		t.Fatalf("len = %d evicted = %d", b.Len(), b.Evicted())
	}
	if got := b.Line(0).Text(); got != "a" {
		t.Errorf("oldest = %q", got)
	}
}

func TestClear(t *testing.T) {
	b := New(3)
	b.Push(lineOf("a"))
	b.Push(lineOf("b"))
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("len after clear = %d", b.Len())
	}
	if b.Evicted() != 2 {
		t.Errorf("evicted after clear = %d, want 2", b.Evicted())
	}
}

func TestEachStopsEarly(t *testing.T) {
	b := New(5)
	for i := 0; i < 5; i++ {
		b.Push(lineOf("x"))
	}
	visits := 0
	b.Each(1, func(i int, l Line) bool {
		visits++
		return visits < 2
	})
	if visits != 2 {
		t.Errorf("visits = %d, want 2", visits)
	}
}

func TestLineTextSkipsContinuations(t *testing.T) {
	l := Line{Cells: []cell.Cell{
		{Rune: '汉', Width: 2, Style: cell.DefaultStyle()},
		{Continuation: true, Style: cell.DefaultStyle()},
		{Rune: '!', Width: 1, Style: cell.DefaultStyle()},
	}}
	if got := l.Text(); got != "汉!" {
		t.Errorf("text = %q", got)
	}
}
