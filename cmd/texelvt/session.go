// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt/session.go
// Summary: Interactive host: shell on a PTY, grid drawn through tcell.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/render"
	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/scrollback"
	"github.com/framegrace/texelvt/search"
)

// session glues one shell process to one emulated screen. The PTY reader
// goroutine and the tcell event loop both touch the screen, so every access
// goes through mu.
type session struct {
	mu   sync.Mutex
	scr  *screen.Screen
	par  *parser.Parser
	ptmx *os.File
	ts   tcell.Screen
	ix   *search.Index
}

// exited carries the shell's exit through the tcell event queue.
type exited struct {
	tcell.EventTime
	err error
}

func runSession(cfg config.Config, scrollbackLines int) error {
	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := ts.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer ts.Fini()
	ts.EnablePaste()

	cols, rows := ts.Size()
	s := &session{
		scr: screen.New(cols, rows, screen.WithScrollback(scrollbackLines)),
		par: parser.New(),
		ts:  ts,
	}

	if cfg.SearchIndexPath != "" {
		ix, err := search.Open(cfg.SearchIndexPath)
		if err != nil {
			log.Printf("Session: search index disabled: %v", err)
		} else {
			s.ix = ix
			defer ix.Close()
			s.scr.HistoryLine = func(line int64, l scrollback.Line) {
				if err := s.ix.Add(line, time.Now(), l.Text()); err != nil {
					log.Printf("Session: index add failed: %v", err)
				}
			}
		}
	}

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM="+cfg.Term)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer ptmx.Close()
	s.ptmx = ptmx

	s.scr.Output = func(b []byte) { ptmx.Write(b) }
	s.scr.TitleChanged = func(title string) { ts.SetTitle(title) }
	s.scr.Bell = func() { ts.Beep() }

	go s.readLoop()
	go func() {
		err := cmd.Wait()
		ts.PostEvent(&exited{err: err})
	}()

	s.draw()
	for {
		done, err := s.handleEvent(ts.PollEvent())
		if done {
			return err
		}
	}
}

// handleEvent processes one tcell event; done reports that the session is
// over, with err carrying a shell crash.
func (s *session) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *exited:
		if ev.err != nil {
			return true, fmt.Errorf("shell exited: %w", ev.err)
		}
		return true, nil
	case *tcell.EventResize:
		cols, rows := ev.Size()
		pty.Setsize(s.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		s.mu.Lock()
		s.scr.Resize(cols, rows)
		s.mu.Unlock()
		s.ts.Sync()
		s.draw()
	case *tcell.EventKey:
		s.mu.Lock()
		app := s.scr.AppCursorKeys()
		s.mu.Unlock()
		if b := encodeKey(ev, app); len(b) > 0 {
			s.ptmx.Write(b)
		}
	case *tcell.EventPaste:
		// EventPaste brackets the pasted EventKey runes; forward the
		// markers only when the application asked for them.
		s.mu.Lock()
		bracketed := s.scr.BracketedPaste()
		s.mu.Unlock()
		if bracketed {
			if ev.Start() {
				s.ptmx.Write([]byte("\x1b[200~"))
			} else {
				s.ptmx.Write([]byte("\x1b[201~"))
			}
		}
	case *tcell.EventInterrupt:
		s.draw()
	}
	return false, nil
}

// readLoop pumps shell output through the parser into the screen and nudges
// the event loop to redraw.
func (s *session) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.scr.ApplyAll(s.par.Feed(buf[:n]))
			s.mu.Unlock()
			s.ts.PostEvent(tcell.NewEventInterrupt(nil))
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("Session: pty read: %v", err)
			}
			return
		}
	}
}

func (s *session) draw() {
	s.mu.Lock()
	snap := s.scr.Snapshot()
	s.mu.Unlock()
	render.Draw(s.ts, snap)
	s.ts.Show()
}
