// Package config provides configuration management for geoaudit.
// It defines the audit settings and default values shared by the CLI and
// the HTTP server.
package config

import (
	"time"
)

// AuditConfig holds the settings for audit runs.
type AuditConfig struct {
	// Crawl parameters
	MaxPages      int           `mapstructure:"max_pages" yaml:"max_pages"`           // Page budget per audit (1-10)
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`   // Per-request HTTP timeout
	CrawlDeadline time.Duration `mapstructure:"crawl_deadline" yaml:"crawl_deadline"` // Overall wall-clock budget per crawl
	RequestDelay  time.Duration `mapstructure:"request_delay" yaml:"request_delay"`   // Politeness delay between fetches
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`         // HTTP User-Agent header

	// Persistence (optional)
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"` // SQLite file for audit history, empty disables

	// Server
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"` // Address for the serve command

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`   // Optional log file path
}

// MaxPageBudget is the hard ceiling for pages per audit.
const MaxPageBudget = 10

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *AuditConfig {
	return &AuditConfig{
		MaxPages:      5,
		FetchTimeout:  8 * time.Second,
		CrawlDeadline: 60 * time.Second,
		RequestDelay:  200 * time.Millisecond,
		UserAgent:     "geoaudit/1.0 (+https://github.com/fintamas01/geoaudit)",
		ListenAddr:    ":8090",
		LogLevel:      "info",
	}
}

// Validate checks the configuration and clamps soft limits into range.
func (c *AuditConfig) Validate() error {
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxPages > MaxPageBudget {
		c.MaxPages = MaxPageBudget
	}

	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.CrawlDeadline < 0 {
		return ErrInvalidDeadline
	}

	if c.RequestDelay < 0 {
		c.RequestDelay = 0
	}

	if c.UserAgent == "" {
		return ErrEmptyUserAgent
	}

	return nil
}
