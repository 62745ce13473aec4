// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/parser.go
// Summary: ECMA-48/DEC byte-level state machine for VT escape sequences.
// Usage: Feed raw PTY bytes, consume the returned Action stream.
// Notes: Never fails on malformed input; unrecognized sequences degrade to
// a recovery transition instead of an error.

package parser

import (
	"unicode/utf8"

	"github.com/framegrace/texelvt/cell"
)

// Parsing limits. Overflow clamps or truncates, it never rejects.
const (
	// MaxParams is the maximum number of numeric CSI/DCS parameters kept.
	MaxParams = 16
	// MaxParamValue caps each accumulated parameter value.
	MaxParamValue = 65535
	// MaxStringLen caps OSC, DCS and SOS/PM/APC payloads in bytes.
	MaxStringLen = 4096
	// maxIntermediates caps collected intermediate bytes before a
	// sequence is routed to the ignore state.
	maxIntermediates = 2
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateDCSEntry
	stateDCSParam
	stateDCSIgnore
	stateDCSPassthrough
	stateOSCString
	stateSosPmApcString
)

// Parser is a restartable VT byte-stream scanner. Feed may be called with
// arbitrary chunk boundaries, including splits inside escape sequences and
// inside UTF-8 codepoints; decoding continues where it left off.
//
// The parser owns no screen state. Its only persistent state is the
// partial-sequence accumulator between calls.
type Parser struct {
	state state

	params       []int
	currentParam int
	inSubparam   bool // inside a ':' subparameter, digits are discarded
	private      byte
	inters       []byte

	payload   []byte // OSC/DCS/SOS-PM-APC accumulator
	dcsEscape bool   // saw ESC inside a string, waiting for the terminator
	dcsParams []int
	dcsFinal  byte

	utf8Buf [4]byte
	utf8Len int
	utf8Exp int

	out []Action
}

// New creates a parser in the Ground state.
func New() *Parser {
	return &Parser{
		params:  make([]int, 0, MaxParams),
		inters:  make([]byte, 0, maxIntermediates),
		payload: make([]byte, 0, 128),
	}
}

// Feed scans data and returns the Actions completed by it, in order.
// Sequences left unfinished at the end of data are held over and completed
// by subsequent calls.
func (p *Parser) Feed(data []byte) []Action {
	p.out = nil
	for _, b := range data {
		p.step(b)
	}
	return p.out
}

func (p *Parser) emit(a Action) {
	p.out = append(p.out, a)
}

func (p *Parser) step(b byte) {
	if p.state == stateGround {
		p.ground(b)
		return
	}

	// A pending UTF-8 sequence can only exist in Ground.
	switch b {
	case 0x18, 0x1a: // CAN, SUB abort the sequence in progress
		p.state = stateGround
		return
	}

	switch p.state {
	case stateEscape:
		p.escape(b)
	case stateEscapeIntermediate:
		p.escapeIntermediate(b)
	case stateCSIEntry:
		p.csiEntry(b)
	case stateCSIParam:
		p.csiParam(b)
	case stateCSIIntermediate:
		p.csiIntermediate(b)
	case stateCSIIgnore:
		p.csiIgnore(b)
	case stateDCSEntry, stateDCSParam:
		p.dcsParam(b)
	case stateDCSIgnore:
		p.stringIgnore(b)
	case stateDCSPassthrough:
		p.dcsPassthrough(b)
	case stateOSCString:
		p.oscString(b)
	case stateSosPmApcString:
		p.stringIgnore(b)
	}
}

// --- Ground state: text, C0 controls, UTF-8 assembly ---

func (p *Parser) ground(b byte) {
	if p.utf8Len > 0 {
		p.utf8Continue(b)
		return
	}

	switch {
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	case b == 0x7f:
		// DEL is ignored on input
	case b < 0x80:
		p.emitPrint(rune(b))
	default:
		p.utf8Start(b)
	}
}

func (p *Parser) emitPrint(r rune) {
	p.emit(Action{
		Kind:     ActionPrint,
		Grapheme: string(r),
		Width:    cell.RuneDisplayWidth(r),
	})
}

func (p *Parser) utf8Start(b byte) {
	switch {
	case b >= 0xc2 && b <= 0xdf:
		p.utf8Exp = 2
	case b >= 0xe0 && b <= 0xef:
		p.utf8Exp = 3
	case b >= 0xf0 && b <= 0xf4:
		p.utf8Exp = 4
	default:
		// Stray continuation or invalid leading byte.
		p.emitPrint(utf8.RuneError)
		return
	}
	p.utf8Buf[0] = b
	p.utf8Len = 1
}

func (p *Parser) utf8Continue(b byte) {
	if b < 0x80 || b > 0xbf {
		// Sequence cut short: replace it and reprocess the new byte.
		p.utf8Len = 0
		p.emitPrint(utf8.RuneError)
		p.step(b)
		return
	}
	p.utf8Buf[p.utf8Len] = b
	p.utf8Len++
	if p.utf8Len < p.utf8Exp {
		return
	}
	r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
	p.utf8Len = 0
	p.emitPrint(r)
}

// --- Escape states ---

func (p *Parser) enterEscape() {
	p.state = stateEscape
	p.inters = p.inters[:0]
}

func (p *Parser) escape(b byte) {
	switch {
	case b == '[':
		p.state = stateCSIEntry
		p.resetSequence()
	case b == ']':
		p.state = stateOSCString
		p.payload = p.payload[:0]
		p.dcsEscape = false
	case b == 'P':
		p.state = stateDCSEntry
		p.resetSequence()
		p.payload = p.payload[:0]
		p.dcsEscape = false
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
		p.dcsEscape = false
	case b >= 0x20 && b <= 0x2f:
		p.inters = append(p.inters, b)
		p.state = stateEscapeIntermediate
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	case b >= 0x30 && b <= 0x7e:
		p.emit(Action{Kind: ActionESC, Final: b})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) escapeIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		if len(p.inters) < maxIntermediates {
			p.inters = append(p.inters, b)
		}
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	case b >= 0x30 && b <= 0x7e:
		p.emit(Action{
			Kind:          ActionESC,
			Intermediates: append([]byte(nil), p.inters...),
			Final:         b,
		})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

// --- CSI states ---

func (p *Parser) resetSequence() {
	p.params = p.params[:0]
	p.currentParam = 0
	p.inSubparam = false
	p.private = 0
	p.inters = p.inters[:0]
}

func (p *Parser) pushParam() {
	if len(p.params) < MaxParams {
		p.params = append(p.params, p.currentParam)
	}
	p.currentParam = 0
	p.inSubparam = false
}

func (p *Parser) accumulate(b byte) {
	if p.inSubparam {
		return
	}
	v := p.currentParam*10 + int(b-'0')
	if v > MaxParamValue {
		v = MaxParamValue
	}
	p.currentParam = v
}

func (p *Parser) csiEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.accumulate(b)
		p.state = stateCSIParam
	case b == ';':
		p.pushParam()
		p.state = stateCSIParam
	case b == ':':
		p.inSubparam = true
		p.state = stateCSIParam
	case b >= 0x3c && b <= 0x3f:
		p.private = b
		p.state = stateCSIParam
	case b >= 0x20 && b <= 0x2f:
		p.inters = append(p.inters, b)
		p.state = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.dispatchCSI(b)
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) csiParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.accumulate(b)
	case b == ';':
		p.pushParam()
	case b == ':':
		p.inSubparam = true
	case b >= 0x3c && b <= 0x3f:
		// Private markers are only valid before parameters.
		p.state = stateCSIIgnore
	case b >= 0x20 && b <= 0x2f:
		p.inters = append(p.inters, b)
		p.state = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.dispatchCSI(b)
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) csiIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		if len(p.inters) < maxIntermediates {
			p.inters = append(p.inters, b)
		} else {
			p.state = stateCSIIgnore
		}
	case b >= 0x30 && b <= 0x3f:
		p.state = stateCSIIgnore
	case b >= 0x40 && b <= 0x7e:
		p.dispatchCSI(b)
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) csiIgnore(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7e:
		p.state = stateGround
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.emit(Action{Kind: ActionControl, Byte: b})
	}
}

func (p *Parser) dispatchCSI(final byte) {
	p.pushParam()
	p.emit(Action{
		Kind:          ActionCSI,
		Params:        append([]int(nil), p.params...),
		Private:       p.private,
		Intermediates: append([]byte(nil), p.inters...),
		Final:         final,
	})
	p.state = stateGround
}

// --- DCS states ---

func (p *Parser) dcsParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.accumulate(b)
		p.state = stateDCSParam
	case b == ';':
		p.pushParam()
		p.state = stateDCSParam
	case b == ':':
		p.inSubparam = true
		p.state = stateDCSParam
	case b >= 0x3c && b <= 0x3f:
		if p.state == stateDCSEntry {
			p.private = b
			p.state = stateDCSParam
		} else {
			p.state = stateDCSIgnore
		}
	case b >= 0x20 && b <= 0x2f:
		p.inters = append(p.inters, b)
	case b >= 0x40 && b <= 0x7e:
		p.pushParam()
		p.dcsParams = append([]int(nil), p.params...)
		p.dcsFinal = b
		p.state = stateDCSPassthrough
	case b == 0x1b:
		p.enterEscape()
	default:
		p.state = stateDCSIgnore
	}
}

func (p *Parser) dcsPassthrough(b byte) {
	if p.dcsEscape {
		p.dcsEscape = false
		if b == '\\' { // ST terminates the string
			p.emit(Action{
				Kind:    ActionDCS,
				Params:  p.dcsParams,
				Private: p.private,
				Final:   p.dcsFinal,
				Payload: append([]byte(nil), p.payload...),
			})
			p.state = stateGround
			return
		}
		// Not a terminator: keep both bytes in the payload.
		p.appendPayload(0x1b)
		p.appendPayload(b)
		return
	}
	if b == 0x1b {
		p.dcsEscape = true
		return
	}
	p.appendPayload(b)
}

// --- OSC and SOS/PM/APC strings ---

func (p *Parser) oscString(b byte) {
	if p.dcsEscape {
		p.dcsEscape = false
		if b == '\\' {
			p.emitOSC()
			return
		}
		// ESC without ST cancels the string; the new byte is reprocessed.
		p.state = stateGround
		p.enterEscape()
		p.step(b)
		return
	}
	switch b {
	case 0x07: // BEL terminator
		p.emitOSC()
	case 0x1b:
		p.dcsEscape = true
	default:
		p.appendPayload(b)
	}
}

func (p *Parser) emitOSC() {
	p.emit(Action{Kind: ActionOSC, Payload: append([]byte(nil), p.payload...)})
	p.payload = p.payload[:0]
	p.state = stateGround
}

func (p *Parser) stringIgnore(b byte) {
	if p.dcsEscape {
		p.dcsEscape = false
		if b == '\\' {
			p.state = stateGround
		}
		return
	}
	switch b {
	case 0x07:
		p.state = stateGround
	case 0x1b:
		p.dcsEscape = true
	}
}

func (p *Parser) appendPayload(b byte) {
	if len(p.payload) < MaxStringLen {
		p.payload = append(p.payload, b)
	}
}
