// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the helpdesk
// console.
//
// Configuration is loaded from a single YAML file specified by:
//   - HELPDESK_CONFIG environment variable, or
//   - --config flag passed to the command, or
//   - ~/.config/helpdesk/config.yaml
//
// There are no further fallbacks or discovery chains; a missing file
// yields the defaults, which only work once ServerURL is set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML support for Go duration
// strings ("5s", "1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (duration *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*duration = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (duration Duration) MarshalYAML() (any, error) {
	return time.Duration(duration).String(), nil
}

// Config is the console configuration.
type Config struct {
	// ServerURL is the helpdesk backend base URL (e.g.
	// "https://helpdesk.example.com/api"). Required.
	ServerURL string `yaml:"server_url"`

	// ComplaintReportURLBase is the public URL prefix for viewing an
	// escalated complaint; the console shows
	// {base}/{complaintId}/{category} next to linked tickets.
	// Optional.
	ComplaintReportURLBase string `yaml:"complaint_report_url_base"`

	// ListPollInterval is the cadence of background ticket-list
	// refreshes.
	ListPollInterval Duration `yaml:"list_poll_interval"`

	// DetailPollInterval is the cadence of background refreshes of
	// the open ticket.
	DetailPollInterval Duration `yaml:"detail_poll_interval"`

	// Bell enables the audible alert on newly arrived tickets.
	Bell bool `yaml:"bell"`
}

// Default returns the built-in configuration: 5-second polling on both
// timers (matching the backend's rate expectations) and the bell on.
func Default() Config {
	return Config{
		ListPollInterval:   Duration(5 * time.Second),
		DetailPollInterval: Duration(5 * time.Second),
		Bell:               true,
	}
}

// Validate checks that the configuration is usable.
func (config *Config) Validate() error {
	if config.ServerURL == "" {
		return fmt.Errorf("server_url is required (set it in %s)", Path(""))
	}
	if config.ListPollInterval <= 0 || config.DetailPollInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	return nil
}

// Path resolves the config file location: the explicit flag value,
// then HELPDESK_CONFIG, then the XDG default.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if fromEnv := os.Getenv("HELPDESK_CONFIG"); fromEnv != "" {
		return fromEnv
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "helpdesk-config.yaml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "helpdesk", "config.yaml")
}

// Load reads the config file at the resolved path, layered over the
// defaults. A missing file returns the defaults unchanged; the caller
// decides whether an unset ServerURL is fatal via Validate.
func Load(flagValue string) (Config, error) {
	result := Default()

	data, err := os.ReadFile(Path(flagValue))
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("parsing %s: %w", Path(flagValue), err)
	}
	return result, nil
}
