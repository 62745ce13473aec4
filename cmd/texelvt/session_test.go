// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt/session_test.go
// Summary: Session event handling tests.

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/framegrace/texelvt/parser"
	"github.com/framegrace/texelvt/screen"
)

func TestExitEventEndsSessionCleanly(t *testing.T) {
	s := &session{scr: screen.New(80, 24), par: parser.New()}
	done, err := s.handleEvent(&exited{})
	if !done {
		t.Fatal("exit event did not end the session")
	}
	if err != nil {
		t.Errorf("clean exit returned %v", err)
	}
}

func TestExitEventCarriesShellError(t *testing.T) {
	s := &session{scr: screen.New(80, 24), par: parser.New()}
	boom := errors.New("exit status 127")
	done, err := s.handleEvent(&exited{err: boom})
	if !done {
		t.Fatal("exit event did not end the session")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped shell error", err)
	}
	if !strings.Contains(err.Error(), "shell exited") {
		t.Errorf("err = %v", err)
	}
}
