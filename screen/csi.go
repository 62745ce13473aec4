// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/csi.go
// Summary: Control-sequence dispatch for the Screen engine.
// Usage: Routes completed CSI actions to cursor, erase, scroll and mode logic.
// Notes: Unsupported finals are logged and ignored, never fatal.

package screen

import (
	"fmt"
	"log"

	"github.com/framegrace/texelvt/parser"
)

func (s *Screen) csi(a parser.Action) {
	if a.Private == '?' {
		s.privateMode(a)
		return
	}
	if a.Private != 0 {
		// '<', '=' and '>' prefixed sequences (DA2, xterm extensions)
		// have no grid effect beyond the DA2 response.
		if a.Final == 'c' && a.Private == '>' {
			s.reply("\x1b[>0;10;1c")
		}
		return
	}
	if len(a.Intermediates) > 0 {
		switch {
		case a.Intermediates[0] == ' ' && a.Final == 'q': // DECSCUSR
			s.setCursorShape(a.ParamOrZero(0))
		default:
			log.Printf("screen: unhandled CSI %s %q", string(a.Intermediates), a.Final)
		}
		return
	}

	switch a.Final {
	case 'A': // CUU
		s.moveUp(a.Param(0, 1))
	case 'B': // CUD
		s.moveDown(a.Param(0, 1))
	case 'C': // CUF
		s.moveForward(a.Param(0, 1))
	case 'D': // CUB
		s.moveBackward(a.Param(0, 1))
	case 'E': // CNL
		s.moveDown(a.Param(0, 1))
		s.cursorX = 0
	case 'F': // CPL
		s.moveUp(a.Param(0, 1))
		s.cursorX = 0
	case 'G', '`': // CHA / HPA
		s.setColumn(a.Param(0, 1) - 1)
	case 'H', 'f': // CUP / HVP
		s.moveTo(a.Param(0, 1)-1, a.Param(1, 1)-1)
	case 'I': // CHT
		for i := 0; i < a.Param(0, 1); i++ {
			s.tab()
		}
	case 'Z': // CBT
		for i := 0; i < a.Param(0, 1); i++ {
			s.backTab()
		}
	case 'd': // VPA
		s.setRow(a.Param(0, 1) - 1)
	case 'a': // HPR
		s.moveForward(a.Param(0, 1))
	case 'e': // VPR
		s.moveDown(a.Param(0, 1))
	case 'J': // ED
		s.eraseInDisplay(a.ParamOrZero(0))
	case 'K': // EL
		s.eraseInLine(a.ParamOrZero(0))
	case 'L': // IL
		s.insertLines(a.Param(0, 1))
	case 'M': // DL
		s.deleteLines(a.Param(0, 1))
	case 'P': // DCH
		s.deleteCharacters(a.Param(0, 1))
	case '@': // ICH
		s.insertCharacters(a.Param(0, 1))
	case 'X': // ECH
		s.eraseCharacters(a.Param(0, 1))
	case 'b': // REP
		s.repeatLast(a.Param(0, 1))
	case 'S': // SU
		s.scrollUp(a.Param(0, 1))
	case 'T': // SD
		s.scrollDown(a.Param(0, 1))
	case 'm': // SGR
		s.sgr(a.Params)
	case 'r': // DECSTBM
		s.setMargins(a.ParamOrZero(0), a.ParamOrZero(1))
	case 's': // SCOSC
		s.saveCursor()
	case 'u': // SCORC
		s.restoreCursor()
	case 'g': // TBC
		s.tabClear(a.ParamOrZero(0))
	case 'h', 'l': // SM / RM
		s.ansiMode(a)
	case 'n': // DSR
		s.deviceStatus(a.ParamOrZero(0))
	case 'c': // DA
		s.reply("\x1b[?6c")
	case 't': // window manipulation, ignored
	case 'q': // DECLL keyboard LEDs, ignored
	default:
		log.Printf("screen: unhandled CSI final %q params %v", a.Final, a.Params)
	}
}

func (s *Screen) tabClear(mode int) {
	switch mode {
	case 0:
		delete(s.tabStops, s.cursorX)
	case 3:
		s.tabStops = make(map[int]bool)
	}
}

func (s *Screen) deviceStatus(mode int) {
	switch mode {
	case 5: // operating status: OK
		s.reply("\x1b[0n")
	case 6: // cursor position report
		row, col := s.cursorY, s.cursorX
		if s.origin {
			row -= s.marginTop
		}
		s.reply(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1))
	}
}

func (s *Screen) setCursorShape(p int) {
	switch p {
	case 0, 1, 2:
		s.cursorShape = CursorShapeBlock
	case 3, 4:
		s.cursorShape = CursorShapeUnderline
	case 5, 6:
		s.cursorShape = CursorShapeBar
	}
}
