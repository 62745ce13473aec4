// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/action.go
// Summary: Action variants produced by the escape-sequence parser.
// Usage: Consumed exactly once by the screen engine; never mutated after emit.

package parser

import "fmt"

// ActionKind tags the variant stored in an Action.
type ActionKind int

const (
	// ActionPrint carries a printable grapheme and its display width.
	ActionPrint ActionKind = iota
	// ActionControl carries a single C0 control byte.
	ActionControl
	// ActionESC is a completed non-CSI escape sequence (ESC ... final).
	ActionESC
	// ActionCSI is a completed control sequence (ESC [ params ... final).
	ActionCSI
	// ActionOSC carries an Operating System Command payload.
	ActionOSC
	// ActionDCS carries a Device Control String payload.
	ActionDCS
)

// Action is one decoded unit of terminal input. Fields are populated
// according to Kind; unused fields stay at their zero value.
type Action struct {
	Kind ActionKind

	// Print
	Grapheme string
	Width    int

	// Control
	Byte byte

	// CSI / ESC / DCS framing
	Params        []int
	Private       byte // leading private marker byte ('?', '<', '=', '>'), 0 if none
	Intermediates []byte
	Final         byte

	// OSC / DCS payload
	Payload []byte
}

// Param returns the i-th numeric parameter, treating missing or zero
// values as def (VT convention: omitted and 0 both mean the default).
func (a Action) Param(i, def int) int {
	if i >= len(a.Params) || a.Params[i] == 0 {
		return def
	}
	return a.Params[i]
}

// ParamOrZero returns the i-th numeric parameter or 0 when absent, for
// sequences where 0 is a meaningful value (ED/EL/TBC modes).
func (a Action) ParamOrZero(i int) int {
	if i >= len(a.Params) {
		return 0
	}
	return a.Params[i]
}

// String renders the action for diagnostics.
func (a Action) String() string {
	switch a.Kind {
	case ActionPrint:
		return fmt.Sprintf("print(%q w=%d)", a.Grapheme, a.Width)
	case ActionControl:
		return fmt.Sprintf("ctrl(0x%02x)", a.Byte)
	case ActionESC:
		return fmt.Sprintf("esc(%s%c)", string(a.Intermediates), a.Final)
	case ActionCSI:
		priv := ""
		if a.Private != 0 {
			priv = string(a.Private)
		}
		return fmt.Sprintf("csi(%s%v%s%c)", priv, a.Params, string(a.Intermediates), a.Final)
	case ActionOSC:
		return fmt.Sprintf("osc(%q)", a.Payload)
	case ActionDCS:
		return fmt.Sprintf("dcs(%v %q)", a.Params, a.Payload)
	}
	return "unknown"
}
