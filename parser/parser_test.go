// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/parser_test.go
// Summary: Scanner state machine tests: chunk-split stability, UTF-8
// recovery, parameter limits, malformed-sequence tolerance.

package parser

import (
	"bytes"
	"strings"
	"testing"
)

func collect(t *testing.T, input string) []Action {
	t.Helper()
	return New().Feed([]byte(input))
}

func flatten(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func TestPlainText(t *testing.T) {
	actions := collect(t, "Hi")
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %v", actions)
	}
	for i, want := range []string{"H", "i"} {
		if actions[i].Kind != ActionPrint || actions[i].Grapheme != want || actions[i].Width != 1 {
			t.Errorf("action %d = %v, want print %q width 1", i, actions[i], want)
		}
	}
}

func TestSGRSequence(t *testing.T) {
	actions := collect(t, "\x1b[31mHi\x1b[0m")
	if len(actions) != 4 {
		t.Fatalf("expected 4 actions, got %v", actions)
	}
	if actions[0].Kind != ActionCSI || actions[0].Final != 'm' || actions[0].Param(0, 0) != 31 {
		t.Errorf("first action = %v, want csi 31m", actions[0])
	}
	if actions[3].Kind != ActionCSI || actions[3].ParamOrZero(0) != 0 {
		t.Errorf("last action = %v, want csi 0m", actions[3])
	}
}

func TestCSIDefaults(t *testing.T) {
	actions := collect(t, "\x1b[m")
	if len(actions) != 1 || actions[0].Kind != ActionCSI {
		t.Fatalf("got %v", actions)
	}
	// A bare final still carries the implicit zero parameter.
	if actions[0].Param(0, 7) != 7 {
		t.Errorf("Param(0, 7) = %d, want default 7", actions[0].Param(0, 7))
	}
}

func TestCSIPrivateMarker(t *testing.T) {
	actions := collect(t, "\x1b[?25h")
	if len(actions) != 1 {
		t.Fatalf("got %v", actions)
	}
	a := actions[0]
	if a.Private != '?' || a.Final != 'h' || a.Param(0, 0) != 25 {
		t.Errorf("got %v, want ?25h", a)
	}
}

func TestParamValueClamped(t *testing.T) {
	actions := collect(t, "\x1b[99999999999999999999m")
	if len(actions) != 1 {
		t.Fatalf("got %v", actions)
	}
	if got := actions[0].Param(0, 0); got != MaxParamValue {
		t.Errorf("param = %d, want clamp to %d", got, MaxParamValue)
	}
}

func TestParamCountClamped(t *testing.T) {
	var b strings.Builder
	b.WriteString("\x1b[")
	for i := 0; i < 40; i++ {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteByte('1')
	}
	b.WriteByte('m')
	actions := collect(t, b.String())
	if len(actions) != 1 {
		t.Fatalf("got %v", actions)
	}
	if got := len(actions[0].Params); got != MaxParams {
		t.Errorf("kept %d params, want %d", got, MaxParams)
	}
}

func TestSubparamsDiscarded(t *testing.T) {
	actions := collect(t, "\x1b[4:3m")
	if len(actions) != 1 {
		t.Fatalf("got %v", actions)
	}
	if got := actions[0].Param(0, 0); got != 4 {
		t.Errorf("param = %d, want 4 with subparam dropped", got)
	}
}

func TestCANAborts(t *testing.T) {
	actions := collect(t, "\x1b[31\x18X")
	if flatten(actions) != `print("X" w=1)` {
		t.Errorf("got %v, want only print X", actions)
	}
}

func TestESCRestartsSequence(t *testing.T) {
	actions := collect(t, "\x1b[1\x1b[2J")
	if len(actions) != 1 || actions[0].Final != 'J' || actions[0].Param(0, 0) != 2 {
		t.Errorf("got %v, want single csi 2J", actions)
	}
}

func TestCSIIgnoreRecovers(t *testing.T) {
	// 0x3a after a private marker parameter block with a second private
	// marker is invalid; the final byte must still end the sequence and
	// following text must print.
	actions := collect(t, "\x1b[1?2mok")
	if len(actions) != 2 || actions[0].Grapheme != "o" || actions[1].Grapheme != "k" {
		t.Errorf("got %v, want malformed CSI swallowed and 'ok' printed", actions)
	}
}

func TestEscDispatch(t *testing.T) {
	actions := collect(t, "\x1b7\x1b#8")
	if len(actions) != 2 {
		t.Fatalf("got %v", actions)
	}
	if actions[0].Kind != ActionESC || actions[0].Final != '7' {
		t.Errorf("got %v, want esc 7", actions[0])
	}
	if actions[1].Final != '8' || string(actions[1].Intermediates) != "#" {
		t.Errorf("got %v, want esc #8", actions[1])
	}
}

func TestOSCBelTerminated(t *testing.T) {
	actions := collect(t, "\x1b]0;my title\x07")
	if len(actions) != 1 || actions[0].Kind != ActionOSC {
		t.Fatalf("got %v", actions)
	}
	if !bytes.Equal(actions[0].Payload, []byte("0;my title")) {
		t.Errorf("payload = %q", actions[0].Payload)
	}
}

func TestOSCStTerminated(t *testing.T) {
	actions := collect(t, "\x1b]8;;https://example.com\x1b\\")
	if len(actions) != 1 || actions[0].Kind != ActionOSC {
		t.Fatalf("got %v", actions)
	}
	if !bytes.Equal(actions[0].Payload, []byte("8;;https://example.com")) {
		t.Errorf("payload = %q", actions[0].Payload)
	}
}

func TestOSCCancelledByEscape(t *testing.T) {
	// ESC not followed by backslash abandons the string; the escape that
	// interrupted it must still dispatch.
	actions := collect(t, "\x1b]0;title\x1b[2J")
	if len(actions) != 1 || actions[0].Kind != ActionCSI || actions[0].Final != 'J' {
		t.Errorf("got %v, want only csi 2J", actions)
	}
}

func TestOSCPayloadCapped(t *testing.T) {
	input := "\x1b]0;" + strings.Repeat("a", MaxStringLen+500) + "\x07"
	actions := collect(t, input)
	if len(actions) != 1 {
		t.Fatalf("got %d actions", len(actions))
	}
	if got := len(actions[0].Payload); got != MaxStringLen {
		t.Errorf("payload length = %d, want cap %d", got, MaxStringLen)
	}
}

func TestDCSPassthrough(t *testing.T) {
	actions := collect(t, "\x1bP1;2qabc\x1b\\")
	if len(actions) != 1 || actions[0].Kind != ActionDCS {
		t.Fatalf("got %v", actions)
	}
	a := actions[0]
	if a.Final != 'q' || a.Param(0, 0) != 1 || a.Param(1, 0) != 2 || !bytes.Equal(a.Payload, []byte("abc")) {
		t.Errorf("got %v", a)
	}
}

func TestSosPmApcSwallowed(t *testing.T) {
	actions := collect(t, "\x1b_ignore me\x1b\\A")
	if flatten(actions) != `print("A" w=1)` {
		t.Errorf("got %v, want only print A", actions)
	}
}

func TestUTF8Widths(t *testing.T) {
	actions := collect(t, "é汉")
	if len(actions) != 2 {
		t.Fatalf("got %v", actions)
	}
	if actions[0].Grapheme != "é" || actions[0].Width != 1 {
		t.Errorf("got %v, want é width 1", actions[0])
	}
	if actions[1].Grapheme != "汉" || actions[1].Width != 2 {
		t.Errorf("got %v, want 汉 width 2", actions[1])
	}
}

func TestUTF8SplitAcrossFeeds(t *testing.T) {
	p := New()
	first := p.Feed([]byte{0xe6, 0xb1})
	if len(first) != 0 {
		t.Fatalf("partial rune emitted early: %v", first)
	}
	second := p.Feed([]byte{0x89})
	if len(second) != 1 || second[0].Grapheme != "汉" {
		t.Errorf("got %v, want 汉", second)
	}
}

func TestUTF8Truncated(t *testing.T) {
	actions := collect(t, "\xe6\xb1A")
	if len(actions) != 2 {
		t.Fatalf("got %v", actions)
	}
	if actions[0].Grapheme != "�" {
		t.Errorf("got %v, want replacement char", actions[0])
	}
	if actions[1].Grapheme != "A" {
		t.Errorf("got %v, want the interrupting byte reprocessed", actions[1])
	}
}

func TestStrayContinuationByte(t *testing.T) {
	actions := collect(t, "\x80")
	if len(actions) != 1 || actions[0].Grapheme != "�" {
		t.Errorf("got %v, want replacement char", actions)
	}
}

func TestDELIgnored(t *testing.T) {
	actions := collect(t, "a\x7fb")
	if len(actions) != 2 || actions[0].Grapheme != "a" || actions[1].Grapheme != "b" {
		t.Errorf("got %v", actions)
	}
}

// TestFeedSplitInvariance checks the restartability law: for any split of
// the input into two chunks, the concatenated action streams must equal
// the stream from a single feed.
func TestFeedSplitInvariance(t *testing.T) {
	input := []byte("pre\x1b[1;31mred é汉\x1b]0;tt\x07\x1bP2q xy\x1b\\\x1b7mid\r\n\x1b[?1049hpost\x1b[0m")

	whole := flatten(New().Feed(input))
	for i := 0; i <= len(input); i++ {
		p := New()
		var actions []Action
		actions = append(actions, p.Feed(input[:i])...)
		actions = append(actions, p.Feed(input[i:])...)
		if got := flatten(actions); got != whole {
			t.Fatalf("split at %d diverged:\n got: %s\nwant: %s", i, got, whole)
		}
	}
}

func TestControlsInsideCSI(t *testing.T) {
	// C0 controls execute immediately without disturbing the sequence.
	actions := collect(t, "\x1b[2\x07J")
	if len(actions) != 2 {
		t.Fatalf("got %v", actions)
	}
	if actions[0].Kind != ActionControl || actions[0].Byte != 0x07 {
		t.Errorf("got %v, want bell first", actions[0])
	}
	if actions[1].Kind != ActionCSI || actions[1].Final != 'J' || actions[1].Param(0, 0) != 2 {
		t.Errorf("got %v, want csi 2J", actions[1])
	}
}
