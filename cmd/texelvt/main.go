// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt/main.go
// Summary: texelvt command entry point.
//
// Modes:
//   texelvt                     Run a shell in the embedded terminal
//   texelvt --capture FILE      Record a raw passthrough session to FILE
//   texelvt --replay FILE       Replay a recording and print the final grid
//   texelvt --colorize FILE     Syntax-highlight a file to stdout
//   texelvt --search QUERY      Query the history search index

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/highlight"
	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/screen"
	"github.com/framegrace/texelvt/search"
)

var (
	captureFlag    string
	replayFlag     string
	colorizeFlag   string
	searchFlag     string
	langFlag       string
	styleFlag      string
	scrollbackFlag int
	colsFlag       int
	rowsFlag       int
)

func main() {
	cfg := config.Load()

	flag.StringVar(&captureFlag, "capture", "", "Record a raw session to FILE")
	flag.StringVar(&replayFlag, "replay", "", "Replay a recorded session and print the final grid")
	flag.StringVar(&colorizeFlag, "colorize", "", "Syntax-highlight FILE to stdout")
	flag.StringVarP(&searchFlag, "search", "s", "", "Search the history index")
	flag.StringVar(&langFlag, "lang", "", "Language for --colorize (default: auto-detect)")
	flag.StringVar(&styleFlag, "style", cfg.HighlightStyle, "Chroma style for --colorize")
	flag.IntVar(&scrollbackFlag, "scrollback", cfg.ScrollbackLines, "Scrollback line limit")
	flag.IntVar(&colsFlag, "cols", 80, "Grid columns for --replay")
	flag.IntVar(&rowsFlag, "rows", 24, "Grid rows for --replay")
	flag.Parse()

	var err error
	switch {
	case colorizeFlag != "":
		err = runColorize(colorizeFlag, langFlag, styleFlag)
	case searchFlag != "":
		err = runSearch(cfg, searchFlag)
	case replayFlag != "":
		err = runReplay(replayFlag, colsFlag, rowsFlag, scrollbackFlag)
	case captureFlag != "":
		err = runCapture(cfg, captureFlag)
	default:
		err = runSession(cfg, scrollbackFlag)
	}
	if err != nil {
		log.Fatalf("texelvt: %v", err)
	}
}

// runColorize highlights a file (or stdin for "-") and writes it with SGR
// escapes to stdout.
func runColorize(path, lang, style string) error {
	var src []byte
	var err error
	if path == "-" {
		src, err = io.ReadAll(os.Stdin)
		path = ""
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if lang == "" {
		lang = highlight.DetectLanguage(path, src)
	}
	_, err = os.Stdout.WriteString(highlight.Text(string(src), lang, style))
	return err
}

// runSearch queries the configured history index.
func runSearch(cfg config.Config, query string) error {
	if cfg.SearchIndexPath == "" {
		return fmt.Errorf("no search_index_path configured")
	}
	ix, err := search.Open(cfg.SearchIndexPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	results, err := ix.Search(query, 50)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%s  %8d  %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Line, r.Content)
	}
	return nil
}

// runReplay feeds a recorded byte stream through the emulator and prints
// the resulting grid as plain text.
func runReplay(path string, cols, rows, scrollback int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	scr := screen.New(cols, rows, screen.WithScrollback(scrollback))
	p := parser.New()
	scr.ApplyAll(p.Feed(data))

	hist := scr.History()
	for i := 0; i < hist.Len(); i++ {
		fmt.Println(hist.Line(i).Text())
	}
	fmt.Println(scr.Text())
	return nil
}
