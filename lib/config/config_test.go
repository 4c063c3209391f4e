// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if time.Duration(cfg.ListPollInterval) != 5*time.Second || time.Duration(cfg.DetailPollInterval) != 5*time.Second {
		t.Errorf("default poll intervals = %v, %v", cfg.ListPollInterval, cfg.DetailPollInterval)
	}
	if !cfg.Bell {
		t.Error("bell should default to on")
	}
	if err := cfg.Validate(); err == nil {
		t.Error("defaults without server_url should not validate")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if time.Duration(cfg.ListPollInterval) != 5*time.Second {
		t.Errorf("missing file changed defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server_url: https://helpdesk.example.com/api
complaint_report_url_base: https://complaints.example.com/report
list_poll_interval: 10s
bell: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "https://helpdesk.example.com/api" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if time.Duration(cfg.ListPollInterval) != 10*time.Second {
		t.Errorf("ListPollInterval = %v", cfg.ListPollInterval)
	}
	// Unset keys keep their defaults.
	if time.Duration(cfg.DetailPollInterval) != 5*time.Second {
		t.Errorf("DetailPollInterval = %v", cfg.DetailPollInterval)
	}
	if cfg.Bell {
		t.Error("bell override not applied")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsNonPositiveIntervals(t *testing.T) {
	cfg := Default()
	cfg.ServerURL = "https://helpdesk.example.com"
	cfg.ListPollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero interval should not validate")
	}
}

func TestPathPrecedence(t *testing.T) {
	t.Setenv("HELPDESK_CONFIG", "/tmp/env.yaml")
	if got := Path("/tmp/flag.yaml"); got != "/tmp/flag.yaml" {
		t.Errorf("flag should win: %q", got)
	}
	if got := Path(""); got != "/tmp/env.yaml" {
		t.Errorf("env should win over default: %q", got)
	}
}
