// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the agent's bearer token and profile across
// console runs, the way SSH keys persist shell access: log in once,
// then every command loads the saved session transparently.
//
// The session file lives at ~/.config/helpdesk/session.json (or
// $HELPDESK_SESSION_FILE, or $XDG_CONFIG_HOME/helpdesk/session.json)
// and is written with mode 0600 since it contains an access token. Its
// absence — or a 401/403 from the server — is the sole signal the
// console uses to force logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the persisted login state.
type Session struct {
	// Token is the bearer credential attached to every request.
	Token string `json:"token"`

	// Profile identifies the signed-in agent.
	Profile Profile `json:"user"`
}

// Profile is the agent identity returned by signin.
type Profile struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AgentName returns the display name used as the sender of outgoing
// messages: the profile name, the username as fallback, and "Agent"
// when the profile carries neither.
func (session *Session) AgentName() string {
	if session.Profile.Name != "" {
		return session.Profile.Name
	}
	if session.Profile.Username != "" {
		return session.Profile.Username
	}
	return "Agent"
}

// FilePath resolves the session file location. HELPDESK_SESSION_FILE
// wins, then XDG_CONFIG_HOME, then ~/.config.
func FilePath() string {
	if explicit := os.Getenv("HELPDESK_SESSION_FILE"); explicit != "" {
		return explicit
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// No resolvable home: fall back to the working directory
			// so login still produces a usable file.
			return "helpdesk-session.json"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "helpdesk", "session.json")
}

// Load reads the saved session. Returns (nil, nil) when no session
// file exists — not logged in is a normal state, not an error.
func Load() (*Session, error) {
	data, err := os.ReadFile(FilePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", FilePath(), err)
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

// Save writes the session with owner-only permissions, creating the
// parent directory as needed.
func Save(session *Session) error {
	path := FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the saved session. Clearing an absent session is a
// no-op.
func Clear() error {
	err := os.Remove(FilePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
