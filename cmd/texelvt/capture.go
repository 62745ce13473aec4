// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelvt/capture.go
// Summary: Raw passthrough recorder: runs a shell on a PTY, mirrors it to
// the real terminal and tees every output byte to a file for --replay.

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/framegrace/texelvt/config"
	"github.com/framegrace/texelvt/termcap"
)

func runCapture(cfg config.Config, outPath string) error {
	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM="+cfg.Term)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer ptmx.Close()

	// Track the outer terminal's size.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winch <- syscall.SIGWINCH
	defer signal.Stop(winch)

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	go io.Copy(ptmx, os.Stdin)
	io.Copy(io.MultiWriter(os.Stdout, out), ptmx)

	// The shell may exit with attributes set or the cursor hidden; leave
	// the outer terminal sane either way.
	enc := termcap.ForTerm(os.Getenv("TERM"))
	os.Stdout.Write(enc.Reset())
	os.Stdout.Write(enc.ShowCursor(true))
	return cmd.Wait()
}
