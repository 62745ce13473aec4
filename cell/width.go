// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cell/width.go
// Summary: Display width helpers backed by go-runewidth and uniseg.
// Usage: Used by the parser when sizing printed glyphs and by selection code.

package cell

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RuneDisplayWidth returns the number of columns a single rune occupies:
// 0 for combining marks and zero-width characters, 2 for wide (CJK,
// emoji) runes, 1 otherwise.
func RuneDisplayWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// GraphemeWidth returns the number of columns a grapheme cluster occupies.
// Multi-rune clusters (base + combining marks, emoji sequences) are
// measured as a unit rather than per rune.
func GraphemeWidth(s string) int {
	return uniseg.StringWidth(s)
}

// IsCombining reports whether the rune attaches to the preceding grapheme
// instead of occupying its own cell.
func IsCombining(r rune) bool {
	return runewidth.RuneWidth(r) == 0 && r >= 0x0300
}
