// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/screen.go
// Summary: Grid engine applying parser Actions to the visible cell matrix.
// Usage: One Screen per terminal session; the engine is the sole mutator of
// its grid and scrollback, callers serialize access externally.

package screen

import (
	"log"

	"github.com/framegrace/texelvt/cell"
	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/scrollback"
)

// CursorShape is the DECSCUSR shape hint for renderers.
type CursorShape int

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeUnderline
	CursorShapeBar
)

type savedCursor struct {
	x, y     int
	style    cell.Style
	origin   bool
	wrapNext bool
}

// Screen owns the visible grid, cursor, scroll region, tab stops and the
// scrollback buffer. Apply never fails: out-of-range operations clamp, and
// unrecognized sequences are ignored, so any byte stream leaves the screen
// in a valid state.
type Screen struct {
	width, height int
	grid          [][]cell.Cell
	rowWrapped    []bool

	cursorX, cursorY int
	cursorVisible    bool
	cursorShape      CursorShape
	wrapNext         bool

	style    cell.Style
	autoWrap bool
	insert   bool
	origin   bool

	marginTop, marginBottom int
	tabStops                map[int]bool

	history *scrollback.Buffer

	inAlt        bool
	mainGrid     [][]cell.Cell
	mainWrapped  []bool
	savedMain    savedCursor
	savedAlt     savedCursor
	savedPrimary savedCursor // DECSC state for the active buffer

	links        linkTable
	title        string
	lastGrapheme string
	lastWidth    int

	bracketedPaste bool
	appCursorKeys  bool

	themeFG, themeBG cell.Color

	// Callbacks, all optional.
	TitleChanged          func(string)
	Bell                  func()
	Output                func([]byte) // terminal responses (DSR, DA, OSC queries)
	OscEvent              func(payload []byte)
	DcsEvent              func(params []int, payload []byte)
	BracketedPasteChanged func(bool)
	HistoryLine           func(index int64, line scrollback.Line)
}

// Option configures a Screen at construction time.
type Option func(*Screen)

// WithScrollback sets the scrollback line capacity.
func WithScrollback(capacity int) Option {
	return func(s *Screen) { s.history = scrollback.New(capacity) }
}

// WithTitleHandler installs a window-title callback.
func WithTitleHandler(fn func(string)) Option {
	return func(s *Screen) { s.TitleChanged = fn }
}

// WithOutput installs the writer used for terminal responses.
func WithOutput(fn func([]byte)) Option {
	return func(s *Screen) { s.Output = fn }
}

// New creates a screen of the given size with default state: cursor at the
// origin, auto-wrap on, tab stops every 8 columns, scroll region covering
// the full grid.
func New(cols, rows int, opts ...Option) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s := &Screen{
		width:         cols,
		height:        rows,
		cursorVisible: true,
		style:         cell.DefaultStyle(),
		autoWrap:      true,
		marginTop:     0,
		marginBottom:  rows - 1,
		tabStops:      make(map[int]bool),
		themeFG:       cell.Color{Mode: cell.ColorModeRGB, R: 0xe5, G: 0xe5, B: 0xe5},
		themeBG:       cell.Color{Mode: cell.ColorModeRGB},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = scrollback.New(scrollback.DefaultCapacity)
	}
	s.grid = makeGrid(cols, rows)
	s.rowWrapped = make([]bool, rows)
	for i := 0; i < cols; i += 8 {
		s.tabStops[i] = true
	}
	return s
}

func makeGrid(cols, rows int) [][]cell.Cell {
	g := make([][]cell.Cell, rows)
	for y := range g {
		g[y] = blankRow(cols, cell.DefaultStyle())
	}
	return g
}

func blankRow(cols int, style cell.Style) []cell.Cell {
	row := make([]cell.Cell, cols)
	for x := range row {
		row[x] = cell.Blank(style)
	}
	return row
}

// Apply mutates the screen according to one Action. It never rejects input.
func (s *Screen) Apply(a parser.Action) {
	switch a.Kind {
	case parser.ActionPrint:
		s.placeGrapheme(a.Grapheme, a.Width)
	case parser.ActionControl:
		s.control(a.Byte)
	case parser.ActionESC:
		s.escape(a)
	case parser.ActionCSI:
		s.csi(a)
	case parser.ActionOSC:
		s.osc(a.Payload)
	case parser.ActionDCS:
		if s.DcsEvent != nil {
			s.DcsEvent(a.Params, a.Payload)
		}
	}
}

// ApplyAll applies a batch of actions in production order.
func (s *Screen) ApplyAll(actions []parser.Action) {
	for _, a := range actions {
		s.Apply(a)
	}
}

func (s *Screen) control(b byte) {
	switch b {
	case 0x07: // BEL
		if s.Bell != nil {
			s.Bell()
		}
	case 0x08: // BS
		s.backspace()
	case 0x09: // HT
		s.tab()
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		s.lineFeed()
	case 0x0d: // CR
		s.carriageReturn()
	case 0x0e, 0x0f: // SO/SI charset shifts, unsupported
	default:
		// Remaining C0 bytes have no screen effect.
	}
}

func (s *Screen) escape(a parser.Action) {
	if len(a.Intermediates) > 0 {
		switch a.Intermediates[0] {
		case '#':
			if a.Final == '8' { // DECALN screen alignment pattern
				s.alignmentFill()
			}
		case '(', ')', '*', '+':
			// Charset designation, unsupported.
		}
		return
	}
	switch a.Final {
	case '7': // DECSC
		s.saveCursor()
	case '8': // DECRC
		s.restoreCursor()
	case 'D': // IND
		s.lineFeed()
	case 'E': // NEL
		s.carriageReturn()
		s.lineFeed()
	case 'H': // HTS
		s.tabStops[s.cursorX] = true
	case 'M': // RI
		s.reverseIndex()
	case 'c': // RIS
		s.Reset()
	case '=', '>': // keypad modes, no grid effect
	default:
		log.Printf("screen: unhandled ESC final %q", a.Final)
	}
}

// Reset restores the power-on state, clearing grid, styles, modes and tab
// stops. Scrollback is preserved.
func (s *Screen) Reset() {
	s.grid = makeGrid(s.width, s.height)
	s.rowWrapped = make([]bool, s.height)
	s.cursorX, s.cursorY = 0, 0
	s.wrapNext = false
	s.style = cell.DefaultStyle()
	s.autoWrap = true
	s.insert = false
	s.origin = false
	s.cursorVisible = true
	s.cursorShape = CursorShapeBlock
	s.marginTop, s.marginBottom = 0, s.height-1
	s.inAlt = false
	s.mainGrid = nil
	s.mainWrapped = nil
	s.tabStops = make(map[int]bool)
	for i := 0; i < s.width; i += 8 {
		s.tabStops[i] = true
	}
}

// alignmentFill implements DECALN: every cell becomes 'E' with default
// style and the margins reset.
func (s *Screen) alignmentFill() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.grid[y][x] = cell.Cell{Rune: 'E', Width: 1, Style: cell.DefaultStyle()}
		}
		s.rowWrapped[y] = false
	}
	s.marginTop, s.marginBottom = 0, s.height-1
	s.cursorX, s.cursorY = 0, 0
	s.wrapNext = false
}

// Resize reallocates the grid to the new dimensions, copying the region
// that fits and clamping cursor and margins.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 || rows < 1 || (cols == s.width && rows == s.height) {
		return
	}
	resized := func(old [][]cell.Cell, oldWrapped []bool) ([][]cell.Cell, []bool) {
		grid := makeGrid(cols, rows)
		wrapped := make([]bool, rows)
		for y := 0; y < min(rows, len(old)); y++ {
			copy(grid[y], old[y][:min(cols, len(old[y]))])
			wrapped[y] = oldWrapped[y]
		}
		return grid, wrapped
	}
	s.grid, s.rowWrapped = resized(s.grid, s.rowWrapped)
	if s.mainGrid != nil {
		s.mainGrid, s.mainWrapped = resized(s.mainGrid, s.mainWrapped)
	}
	for i := (s.width + 7) / 8 * 8; i < cols; i += 8 {
		s.tabStops[i] = true
	}
	s.width, s.height = cols, rows
	s.marginTop, s.marginBottom = 0, rows-1
	s.moveTo(s.cursorY, s.cursorX)
}

// --- Accessors (read-only views; valid until the next mutation) ---

// Size returns the grid dimensions as (cols, rows).
func (s *Screen) Size() (int, int) { return s.width, s.height }

// Cursor returns the cursor position as (col, row).
func (s *Screen) Cursor() (int, int) { return s.cursorX, s.cursorY }

// CursorVisible reports the DECTCEM visibility flag.
func (s *Screen) CursorVisible() bool { return s.cursorVisible }

// Cell returns a copy of the cell at (col, row); the zero Cell when out of
// range.
func (s *Screen) Cell(x, y int) cell.Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return cell.Cell{}
	}
	return s.grid[y][x]
}

// History exposes the scrollback buffer. The engine remains its only writer.
func (s *Screen) History() *scrollback.Buffer { return s.history }

// Title returns the last title set via OSC 0/2.
func (s *Screen) Title() string { return s.title }

// BracketedPaste reports whether DECSET 2004 is active.
func (s *Screen) BracketedPaste() bool { return s.bracketedPaste }

// AppCursorKeys reports whether DECCKM application cursor keys are active.
func (s *Screen) AppCursorKeys() bool { return s.appCursorKeys }

// AltScreen reports whether the alternate buffer is active.
func (s *Screen) AltScreen() bool { return s.inAlt }

// LinkURI resolves a cell's hyperlink id to its URI, "" when unset.
func (s *Screen) LinkURI(id int) string { return s.links.uri(id) }

func (s *Screen) reply(data string) {
	if s.Output != nil {
		s.Output([]byte(data))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
