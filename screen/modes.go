// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/modes.go
// Summary: SM/RM and DECSET/DECRST mode switching, including the alternate
// screen buffer.
// Usage: Part of the Screen engine.

package screen

import (
	"log"

	"github.com/framegrace/texelvt/parser"
)

// ansiMode handles SM (CSI h) and RM (CSI l) without a private marker.
func (s *Screen) ansiMode(a parser.Action) {
	set := a.Final == 'h'
	for i := 0; i < len(a.Params); i++ {
		switch a.Params[i] {
		case 4: // IRM insert/replace
			s.insert = set
		case 20: // LNM, unsupported
		default:
			log.Printf("screen: ignoring ANSI mode %d (set=%v)", a.Params[i], set)
		}
	}
}

// privateMode handles DECSET (CSI ? h) and DECRST (CSI ? l).
func (s *Screen) privateMode(a parser.Action) {
	if a.Final != 'h' && a.Final != 'l' {
		return
	}
	set := a.Final == 'h'
	for i := 0; i < len(a.Params); i++ {
		switch a.Params[i] {
		case 1: // DECCKM application cursor keys
			s.appCursorKeys = set
		case 6: // DECOM origin mode
			s.origin = set
			s.moveTo(0, 0)
		case 7: // DECAWM auto-wrap
			s.autoWrap = set
			if !set {
				s.wrapNext = false
			}
		case 12: // cursor blink, renderer concern
		case 25: // DECTCEM cursor visibility
			s.cursorVisible = set
		case 47, 1047:
			s.switchAltScreen(set, false)
		case 1048:
			if set {
				s.saveCursor()
			} else {
				s.restoreCursor()
			}
		case 1049:
			s.switchAltScreen(set, true)
		case 2004:
			s.bracketedPaste = set
			if s.BracketedPasteChanged != nil {
				s.BracketedPasteChanged(set)
			}
		case 1000, 1002, 1003, 1006, 1004, 1005:
			// Mouse tracking and focus reporting, embedder concern.
		case 2026: // synchronized update, renderer concern
		default:
			log.Printf("screen: ignoring private mode %d (set=%v)", a.Params[i], set)
		}
	}
}

// switchAltScreen flips between the main and alternate buffers. The
// alternate buffer has no scrollback; with saveCursor (1049 semantics) the
// main cursor is saved on entry and restored on exit, and the alternate
// buffer starts cleared.
func (s *Screen) switchAltScreen(enter, saveCur bool) {
	if enter == s.inAlt {
		return
	}
	if enter {
		if saveCur {
			s.saveCursor()
		}
		s.mainGrid = s.grid
		s.mainWrapped = s.rowWrapped
		s.grid = makeGrid(s.width, s.height)
		s.rowWrapped = make([]bool, s.height)
		s.inAlt = true
		s.savedPrimary = s.savedAlt
		if saveCur {
			s.cursorX, s.cursorY = 0, 0
		}
		s.wrapNext = false
		return
	}
	s.grid = s.mainGrid
	s.rowWrapped = s.mainWrapped
	s.mainGrid, s.mainWrapped = nil, nil
	s.inAlt = false
	s.savedPrimary = s.savedMain
	if saveCur {
		s.restoreCursor()
	}
	s.wrapNext = false
}
