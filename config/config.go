// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for texelvt.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

const configName = "texelvt.json"

// Config holds the host settings. Zero values mean "use the default".
type Config struct {
	// ScrollbackLines caps the history buffer.
	ScrollbackLines int `json:"scrollback_lines,omitempty"`
	// Shell overrides $SHELL for the interactive host.
	Shell string `json:"shell,omitempty"`
	// Term is the TERM value exported to the child process.
	Term string `json:"term,omitempty"`
	// HighlightStyle is the Chroma style used by the colorize mode.
	HighlightStyle string `json:"highlight_style,omitempty"`
	// SearchIndexPath enables the history search index when non-empty.
	SearchIndexPath string `json:"search_index_path,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ScrollbackLines: 2000,
		Term:            "xterm-256color",
	}
}

// Path returns the config file location under the user config directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texelvt", configName), nil
}

// Load reads the config file, filling unset fields from defaults. A missing
// or unreadable file logs and falls back to defaults so startup never
// blocks on configuration.
func Load() Config {
	cfg := Default()
	path, err := Path()
	if err != nil {
		log.Printf("Config: no user config dir: %v", err)
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Config: failed to read %s: %v", path, err)
		}
		return cfg
	}
	var file Config
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("Config: failed to parse %s: %v", path, err)
		return cfg
	}
	if file.ScrollbackLines > 0 {
		cfg.ScrollbackLines = file.ScrollbackLines
	}
	if file.Shell != "" {
		cfg.Shell = file.Shell
	}
	if file.Term != "" {
		cfg.Term = file.Term
	}
	cfg.HighlightStyle = file.HighlightStyle
	cfg.SearchIndexPath = file.SearchIndexPath
	return cfg
}

// Save persists the config to disk, creating the directory as needed.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
