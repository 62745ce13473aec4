// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/osc.go
// Summary: OSC dispatch: titles, hyperlinks, theme colors, opaque payloads.
// Usage: Part of the Screen engine.

package screen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/texelvt/cell"
)

// linkTable interns hyperlink URIs (OSC 8) as small integer ids so styles
// stay comparable values.
type linkTable struct {
	ids  map[string]int
	uris []string
}

func (t *linkTable) intern(uri string) int {
	if uri == "" {
		return 0
	}
	if id, ok := t.ids[uri]; ok {
		return id
	}
	if t.ids == nil {
		t.ids = make(map[string]int)
	}
	t.uris = append(t.uris, uri)
	id := len(t.uris) // ids start at 1, 0 means no link
	t.ids[uri] = id
	return id
}

func (t *linkTable) uri(id int) string {
	if id < 1 || id > len(t.uris) {
		return ""
	}
	return t.uris[id-1]
}

// osc interprets an Operating System Command payload. The screen handles
// titles, hyperlinks and default-color set/query itself; everything else
// is surfaced unparsed through the OscEvent callback.
func (s *Screen) osc(payload []byte) {
	parts := bytes.SplitN(payload, []byte{';'}, 2)
	code, err := strconv.Atoi(string(parts[0]))
	if err != nil {
		s.forwardOsc(payload)
		return
	}
	var body string
	if len(parts) == 2 {
		body = string(parts[1])
	}

	switch code {
	case 0, 2: // window title (0 also sets the icon name)
		s.title = body
		if s.TitleChanged != nil {
			s.TitleChanged(body)
		}
	case 1: // icon name only
	case 8:
		s.hyperlink(body)
	case 10:
		s.themeColor(&s.themeFG, 10, body)
	case 11:
		s.themeColor(&s.themeBG, 11, body)
	default:
		s.forwardOsc(payload)
	}
}

func (s *Screen) forwardOsc(payload []byte) {
	if s.OscEvent != nil {
		s.OscEvent(payload)
	}
}

// hyperlink handles OSC 8 ; params ; uri. A non-empty URI starts a link
// run: subsequently printed cells carry its id until the empty-URI form
// clears it.
func (s *Screen) hyperlink(body string) {
	_, uri, ok := strings.Cut(body, ";")
	if !ok {
		return
	}
	s.style.Link = s.links.intern(uri)
}

// themeColor implements OSC 10/11 set and query for the default
// foreground/background theme colors.
func (s *Screen) themeColor(target *cell.Color, code int, body string) {
	if body == "?" {
		r, g, b := cell.Resolve(*target, [3]uint8{0xe5, 0xe5, 0xe5}, [3]uint8{0, 0, 0}, code == 10)
		s.reply(fmt.Sprintf("\x1b]%d;rgb:%02x%02x/%02x%02x/%02x%02x\x07", code, r, r, g, g, b, b))
		return
	}
	if c, ok := parseOSCColor(body); ok {
		*target = c
	}
}

// parseOSCColor parses the X11 rgb:RRRR/GGGG/BBBB form. Components are
// commonly 16-bit, so they scale down to 8-bit channels.
func parseOSCColor(body string) (cell.Color, bool) {
	spec, ok := strings.CutPrefix(body, "rgb:")
	if !ok {
		return cell.Color{}, false
	}
	parts := strings.Split(spec, "/")
	if len(parts) != 3 {
		return cell.Color{}, false
	}
	var ch [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseInt(part, 16, 32)
		if err != nil {
			return cell.Color{}, false
		}
		switch len(part) {
		case 1:
			v *= 17
		case 2:
		case 3:
			v /= 16
		case 4:
			v /= 257
		default:
			return cell.Color{}, false
		}
		ch[i] = uint8(v)
	}
	return cell.Color{Mode: cell.ColorModeRGB, R: ch[0], G: ch[1], B: ch[2]}, true
}
