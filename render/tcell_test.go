// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/tcell_test.go
// Summary: Draw tests against tcell's simulation screen.

package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/cell"
	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/screen"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ts := tcell.NewSimulationScreen("UTF-8")
	if err := ts.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ts.SetSize(w, h)
	t.Cleanup(ts.Fini)
	return ts
}

func drawBytes(t *testing.T, ts tcell.SimulationScreen, w, h int, input string) {
	t.Helper()
	scr := screen.New(w, h)
	par := parser.New()
	scr.ApplyAll(par.Feed([]byte(input)))
	Draw(ts, scr.Snapshot())
	ts.Show()
}

func TestDrawText(t *testing.T) {
	ts := simScreen(t, 10, 3)
	drawBytes(t, ts, 10, 3, "hi")
	mainc, _, _, _ := ts.GetContent(0, 0)
	if mainc != 'h' {
		t.Errorf("cell (0,0) = %q", mainc)
	}
	mainc, _, _, _ = ts.GetContent(1, 0)
	if mainc != 'i' {
		t.Errorf("cell (1,0) = %q", mainc)
	}
}

func TestDrawWideGlyph(t *testing.T) {
	ts := simScreen(t, 10, 3)
	drawBytes(t, ts, 10, 3, "汉x")
	mainc, _, _, width := ts.GetContent(0, 0)
	if mainc != '汉' || width != 2 {
		t.Errorf("wide cell = %q width %d", mainc, width)
	}
	mainc, _, _, _ = ts.GetContent(2, 0)
	if mainc != 'x' {
		t.Errorf("cell after wide = %q", mainc)
	}
}

func TestDrawStyledCell(t *testing.T) {
	ts := simScreen(t, 10, 3)
	drawBytes(t, ts, 10, 3, "\x1b[1;31mX")
	_, _, style, _ := ts.GetContent(0, 0)
	fg, _, attr := style.Decompose()
	if fg != tcell.PaletteColor(1) {
		t.Errorf("fg = %v", fg)
	}
	if attr&tcell.AttrBold == 0 {
		t.Error("bold not set")
	}
}

func TestDrawCursor(t *testing.T) {
	ts := simScreen(t, 10, 3)
	drawBytes(t, ts, 10, 3, "ab")
	x, y, visible := ts.GetCursor()
	if !visible || x != 2 || y != 0 {
		t.Errorf("cursor = (%d,%d) visible=%v", x, y, visible)
	}
}

func TestDrawHiddenCursor(t *testing.T) {
	ts := simScreen(t, 10, 3)
	drawBytes(t, ts, 10, 3, "ab\x1b[?25l")
	_, _, visible := ts.GetCursor()
	if visible {
		t.Error("cursor still visible")
	}
}

func TestTcellColorMapping(t *testing.T) {
	if got := TcellColor(cell.Color{Mode: cell.ColorModeStandard, Value: 3}); got != tcell.PaletteColor(3) {
		t.Errorf("standard = %v", got)
	}
	if got := TcellColor(cell.Color{Mode: cell.ColorMode256, Value: 200}); got != tcell.PaletteColor(200) {
		t.Errorf("256 = %v", got)
	}
	if got := TcellColor(cell.Color{Mode: cell.ColorModeRGB, R: 1, G: 2, B: 3}); got != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("rgb = %v", got)
	}
	if got := TcellColor(cell.Color{}); got != tcell.ColorDefault {
		t.Errorf("default = %v", got)
	}
}

func TestTcellStyleAttributes(t *testing.T) {
	st := cell.Style{
		FG:   cell.DefaultFG,
		BG:   cell.DefaultBG,
		Attr: cell.AttrItalic | cell.AttrStrike,
	}
	_, _, attr := TcellStyle(st).Decompose()
	if attr&tcell.AttrItalic == 0 || attr&tcell.AttrStrikeThrough == 0 {
		t.Errorf("attrs = %v", attr)
	}
}

func TestTcellStyleDimBlendsTowardBackground(t *testing.T) {
	st := cell.Style{
		FG:   cell.Color{Mode: cell.ColorModeRGB, R: 255},
		BG:   cell.Color{Mode: cell.ColorModeRGB},
		Attr: cell.AttrDim,
	}
	fg, _, attr := TcellStyle(st).Decompose()
	if fg == TcellColor(st.FG) {
		t.Error("dim foreground unchanged")
	}
	if fg == tcell.ColorDefault {
		t.Error("dim foreground lost")
	}
	if attr&tcell.AttrDim != 0 {
		t.Error("terminal dim set alongside the blended color")
	}
}

func TestTcellStyleDimOnDefaultColorsUsesTerminalDim(t *testing.T) {
	st := cell.Style{FG: cell.DefaultFG, BG: cell.DefaultBG, Attr: cell.AttrDim}
	fg, _, attr := TcellStyle(st).Decompose()
	if attr&tcell.AttrDim == 0 {
		t.Error("dim attribute not delegated to the terminal")
	}
	if fg != tcell.ColorDefault {
		t.Errorf("default foreground replaced: %v", fg)
	}
}

func TestDimStepDependsOnBackground(t *testing.T) {
	fg := cell.Color{Mode: cell.ColorModeRGB, R: 128, G: 128, B: 128}
	dark := cell.Color{Mode: cell.ColorModeRGB}
	light := cell.Color{Mode: cell.ColorModeRGB, R: 255, G: 255, B: 255}
	if dimColor(fg, dark) == dimColor(fg, light) {
		t.Error("same faded color for opposite backgrounds")
	}
}
