// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cell/cell.go
// Summary: Cell, style and color model for the terminal grid.
// Usage: Consumed by the screen engine, scrollback buffer and renderers.
// Notes: Keeps the data model free of parsing and rendering concerns.

package cell

// Attribute is a bitmask of text rendering attributes.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrBlink
	AttrReverse
	AttrStrike
	AttrInvisible
)

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	names := []struct {
		bit  Attribute
		name string
	}{
		{AttrBold, "bold"},
		{AttrDim, "dim"},
		{AttrItalic, "italic"},
		{AttrUnderline, "underline"},
		{AttrDoubleUnderline, "double-underline"},
		{AttrCurlyUnderline, "curly-underline"},
		{AttrBlink, "blink"},
		{AttrReverse, "reverse"},
		{AttrStrike, "strike"},
		{AttrInvisible, "invisible"},
	}
	var out string
	for _, n := range names {
		if a&n.bit == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	if out == "" {
		return "unknown"
	}
	return out
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault  ColorMode = iota // Default terminal color
	ColorModeStandard                  // The basic 16 ANSI colors
	ColorMode256                       // 256-color palette
	ColorModeRGB                       // 24-bit "true" color
)

// Color represents a terminal color in one of several modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Holds the color code for Standard (0-15) and 256-mode (0-255)
	R, G, B uint8 // Holds the channels for RGB mode
}

// Predefined default colors for convenience.
var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)

// Style groups everything that affects how a cell is rendered.
// Styles compare with ==; interning is left to renderers that want it.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute

	// Link is a hyperlink id assigned by the screen engine's link table,
	// 0 when the cell is not part of a hyperlink.
	Link int
}

// DefaultStyle returns the zero style: default colors, no attributes.
func DefaultStyle() Style {
	return Style{FG: DefaultFG, BG: DefaultBG}
}

// Cell represents a single character cell on the screen.
//
// A wide (2-column) glyph occupies two adjacent cells: the leading cell
// holds the glyph with Width 2, the trailing cell is a continuation
// placeholder that must never be printed into or measured on its own.
type Cell struct {
	Rune      rune
	Combining []rune // Combining marks attached to Rune, usually nil
	Width     int    // 0 for continuation cells, otherwise 1 or 2
	Style     Style

	// Continuation marks the trailing half of a wide glyph.
	Continuation bool
}

// Blank returns an empty cell carrying the given style.
func Blank(style Style) Cell {
	return Cell{Rune: ' ', Width: 1, Style: style}
}

// IsBlank reports whether the cell shows nothing but background.
func (c Cell) IsBlank() bool {
	return !c.Continuation && (c.Rune == ' ' || c.Rune == 0) && len(c.Combining) == 0
}

// Content returns the full grapheme stored in the cell.
func (c Cell) Content() string {
	if c.Continuation {
		return ""
	}
	if c.Rune == 0 {
		return " "
	}
	if len(c.Combining) == 0 {
		return string(c.Rune)
	}
	return string(append([]rune{c.Rune}, c.Combining...))
}

// WithCombining returns a copy of the cell with an extra combining mark.
func (c Cell) WithCombining(r rune) Cell {
	marks := make([]rune, 0, len(c.Combining)+1)
	marks = append(marks, c.Combining...)
	marks = append(marks, r)
	c.Combining = marks
	return c
}
