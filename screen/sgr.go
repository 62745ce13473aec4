// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/sgr.go
// Summary: SGR (Select Graphic Rendition) - text attributes and colors.
// Usage: Part of the Screen engine.

package screen

import "github.com/framegrace/texelvt/cell"

// sgr processes SGR parameters left to right against the running style.
// Extended color forms (38/48;5;n and 38/48;2;r;g;b) consume exactly their
// trailing parameters; a truncated extended form abandons the remainder of
// the sequence rather than misreading its tail as unrelated attributes.
func (s *Screen) sgr(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	link := s.style.Link
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s.style = cell.DefaultStyle()
			s.style.Link = link
		case p == 1:
			s.style.Attr |= cell.AttrBold
		case p == 2:
			s.style.Attr |= cell.AttrDim
		case p == 3:
			s.style.Attr |= cell.AttrItalic
		case p == 4:
			s.style.Attr |= cell.AttrUnderline
		case p == 5 || p == 6:
			s.style.Attr |= cell.AttrBlink
		case p == 7:
			s.style.Attr |= cell.AttrReverse
		case p == 8:
			s.style.Attr |= cell.AttrInvisible
		case p == 9:
			s.style.Attr |= cell.AttrStrike
		case p == 21:
			s.style.Attr |= cell.AttrDoubleUnderline
		case p == 22:
			s.style.Attr &^= cell.AttrBold | cell.AttrDim
		case p == 23:
			s.style.Attr &^= cell.AttrItalic
		case p == 24:
			s.style.Attr &^= cell.AttrUnderline | cell.AttrDoubleUnderline | cell.AttrCurlyUnderline
		case p == 25:
			s.style.Attr &^= cell.AttrBlink
		case p == 27:
			s.style.Attr &^= cell.AttrReverse
		case p == 28:
			s.style.Attr &^= cell.AttrInvisible
		case p == 29:
			s.style.Attr &^= cell.AttrStrike
		case p >= 30 && p <= 37:
			s.style.FG = cell.Color{Mode: cell.ColorModeStandard, Value: uint8(p - 30)}
		case p == 39:
			s.style.FG = cell.DefaultFG
		case p >= 40 && p <= 47:
			s.style.BG = cell.Color{Mode: cell.ColorModeStandard, Value: uint8(p - 40)}
		case p == 49:
			s.style.BG = cell.DefaultBG
		case p == 38 || p == 48:
			color, consumed, ok := extendedColor(params[i+1:])
			if !ok {
				return // truncated extension, abandon the sequence
			}
			if consumed == 0 {
				break // unknown extension selector, skip just this param
			}
			if p == 38 {
				s.style.FG = color
			} else {
				s.style.BG = color
			}
			i += consumed
		case p >= 90 && p <= 97: // bright foreground
			s.style.FG = cell.Color{Mode: cell.ColorModeStandard, Value: uint8(p - 90 + 8)}
		case p >= 100 && p <= 107: // bright background
			s.style.BG = cell.Color{Mode: cell.ColorModeStandard, Value: uint8(p - 100 + 8)}
		}
	}
}

// extendedColor decodes the tail of a 38/48 extended color: rest starts at
// the selector (5 or 2). Returns consumed == 0 for unknown selectors and
// ok == false when the selector is valid but its arguments are missing.
func extendedColor(rest []int) (c cell.Color, consumed int, ok bool) {
	if len(rest) == 0 {
		return c, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return c, 0, false
		}
		return cell.Color{Mode: cell.ColorMode256, Value: clampChan(rest[1])}, 2, true
	case 2:
		if len(rest) < 4 {
			return c, 0, false
		}
		return cell.Color{
			Mode: cell.ColorModeRGB,
			R:    clampChan(rest[1]),
			G:    clampChan(rest[2]),
			B:    clampChan(rest[3]),
		}, 4, true
	default:
		return c, 0, true
	}
}

func clampChan(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
