// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight.go
// Summary: Syntax colorization of grid rows via Chroma, language detection
// via enry. Operates on cells in-place; only default-foreground cells are
// touched so application colors always win.

package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/texelvt/cell"
)

const defaultStyleName = "catppuccin-mocha"

// Style resolves a Chroma style name, falling back to the default theme.
func Style(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}

// DetectLanguage guesses the language of content, using the filename when
// available. Returns "" when nothing matches.
func DetectLanguage(filename string, content []byte) string {
	if lang := enry.GetLanguage(filename, content); lang != "" {
		return lang
	}
	return ""
}

// Lexer returns the Chroma lexer for a language name, auto-detecting from
// the text when the name is empty or unknown.
func Lexer(lang, text string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// Row colorizes one row of cells in-place as a line of lang source. Cells
// that already carry a non-default foreground are left alone.
func Row(cells []cell.Cell, lang string, style *chroma.Style) {
	plain, textToCell := plainTextMap(cells)
	if len(plain) == 0 {
		return
	}
	text := string(plain)

	lexer := chroma.Coalesce(Lexer(lang, text))
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return
	}

	base := style.Get(chroma.Text).Colour
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len([]rune(tok.Value))
		fg, attr, colored := tokenStyle(style.Get(tok.Type), base)
		if colored || attr != 0 {
			for i := pos; i < pos+n && i < len(textToCell); i++ {
				ci := textToCell[i]
				if cells[ci].Style.FG.Mode != cell.ColorModeDefault {
					continue
				}
				if colored {
					cells[ci].Style.FG = fg
				}
				cells[ci].Style.Attr |= attr
			}
		}
		pos += n
	}
}

// Text colorizes a multi-line block of source and returns it with SGR
// escapes woven in. This is the streaming form used by the CLI colorize
// mode; the grid form above is used for in-place row colorization.
func Text(src, lang, styleName string) string {
	style := Style(styleName)
	lexer := chroma.Coalesce(Lexer(lang, src))
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	base := style.Get(chroma.Text).Colour
	var b strings.Builder
	for tok := it(); tok != chroma.EOF; tok = it() {
		fg, attr, colored := tokenStyle(style.Get(tok.Type), base)
		if !colored && attr == 0 {
			b.WriteString(tok.Value)
			continue
		}
		b.WriteString("\x1b[")
		sep := false
		if attr&cell.AttrBold != 0 {
			b.WriteString("1")
			sep = true
		}
		if attr&cell.AttrItalic != 0 {
			if sep {
				b.WriteByte(';')
			}
			b.WriteString("3")
			sep = true
		}
		if attr&cell.AttrUnderline != 0 {
			if sep {
				b.WriteByte(';')
			}
			b.WriteString("4")
			sep = true
		}
		if colored {
			if sep {
				b.WriteByte(';')
			}
			fmt.Fprintf(&b, "38;2;%d;%d;%d", fg.R, fg.G, fg.B)
		}
		b.WriteByte('m')
		b.WriteString(tok.Value)
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// tokenStyle maps a Chroma style entry to a cell color and attribute set.
// colored is false when the entry matches the style's base text color, so
// the default-foreground bit survives.
func tokenStyle(entry chroma.StyleEntry, base chroma.Colour) (fg cell.Color, attr cell.Attribute, colored bool) {
	if entry.Bold == chroma.Yes {
		attr |= cell.AttrBold
	}
	if entry.Italic == chroma.Yes {
		attr |= cell.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		attr |= cell.AttrUnderline
	}
	if !entry.Colour.IsSet() || entry.Colour == base {
		return cell.Color{}, attr, false
	}
	return cell.Color{
		Mode: cell.ColorModeRGB,
		R:    entry.Colour.Red(),
		G:    entry.Colour.Green(),
		B:    entry.Colour.Blue(),
	}, attr, true
}

// plainTextMap extracts printable runes and a rune-index to cell-index map.
// Continuation cells carry no rune and are skipped.
func plainTextMap(cells []cell.Cell) ([]rune, []int) {
	plain := make([]rune, 0, len(cells))
	textToCell := make([]int, 0, len(cells))
	for i, c := range cells {
		if c.Rune != 0 && !c.Continuation {
			plain = append(plain, c.Rune)
			textToCell = append(textToCell, i)
		}
	}
	return plain, textToCell
}
