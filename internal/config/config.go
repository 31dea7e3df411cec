// Package config loads and validates archiver configuration via Viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default archive-protocol settings, overridable by file or environment.
const (
	DefaultFetchTimeoutSeconds = 30
	DefaultUserAgent           = "LlmsTxtBenchmark/1.0 (academic research)"
	DefaultRateLimitMs         = 1000
)

// Config captures every configuration knob for an archive run. All values
// originate from Viper so the archiver can be configured via file, env vars,
// or CLI flags.
type Config struct {
	Protocol ProtocolConfig `mapstructure:"archive_protocol"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// ProtocolConfig governs fetch behavior: timeouts, identity, politeness,
// and the JS-shell detection thresholds.
type ProtocolConfig struct {
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds"`
	UserAgent           string `mapstructure:"user_agent"`
	RateLimitMs         int    `mapstructure:"rate_limit_ms"`
	RespectRobotsTxt    bool   `mapstructure:"respect_robots_txt"`
	JSMinHTMLBytes      int    `mapstructure:"js_min_html_bytes"`
	JSMinTextChars      int    `mapstructure:"js_min_text_chars"`
}

// PathsConfig locates the corpus inputs and archive outputs. Relative paths
// are resolved against the directory containing the config file.
type PathsConfig struct {
	SiteList        string `mapstructure:"site_list"`
	Questions       string `mapstructure:"questions"`
	ArchiveDir      string `mapstructure:"archive_dir"`
	ArchiveManifest string `mapstructure:"archive_manifest"`
}

// Load builds a Config from the given file plus environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARCHIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	baseDir := "."
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		baseDir = filepath.Dir(path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.resolveRelative(baseDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("archive_protocol.fetch_timeout_seconds", DefaultFetchTimeoutSeconds)
	v.SetDefault("archive_protocol.user_agent", DefaultUserAgent)
	v.SetDefault("archive_protocol.rate_limit_ms", DefaultRateLimitMs)
	v.SetDefault("archive_protocol.respect_robots_txt", true)
	v.SetDefault("archive_protocol.js_min_html_bytes", 5000)
	v.SetDefault("archive_protocol.js_min_text_chars", 200)
	v.SetDefault("paths.site_list", "site-list.csv")
	v.SetDefault("paths.questions", "questions.json")
	v.SetDefault("paths.archive_dir", "archive")
	v.SetDefault("paths.archive_manifest", "archive/manifest.json")
}

func (p *PathsConfig) resolveRelative(baseDir string) {
	for _, field := range []*string{&p.SiteList, &p.Questions, &p.ArchiveDir, &p.ArchiveManifest} {
		if *field != "" && !filepath.IsAbs(*field) {
			*field = filepath.Join(baseDir, *field)
		}
	}
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Protocol.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("archive_protocol.fetch_timeout_seconds must be > 0")
	}
	if c.Protocol.UserAgent == "" {
		return fmt.Errorf("archive_protocol.user_agent must be set")
	}
	if c.Protocol.RateLimitMs < 0 {
		return fmt.Errorf("archive_protocol.rate_limit_ms must be >= 0")
	}
	if c.Protocol.JSMinHTMLBytes < 0 {
		return fmt.Errorf("archive_protocol.js_min_html_bytes must be >= 0")
	}
	if c.Protocol.JSMinTextChars < 0 {
		return fmt.Errorf("archive_protocol.js_min_text_chars must be >= 0")
	}
	if c.Paths.SiteList == "" {
		return fmt.Errorf("paths.site_list must be set")
	}
	if c.Paths.Questions == "" {
		return fmt.Errorf("paths.questions must be set")
	}
	if c.Paths.ArchiveDir == "" {
		return fmt.Errorf("paths.archive_dir must be set")
	}
	if c.Paths.ArchiveManifest == "" {
		return fmt.Errorf("paths.archive_manifest must be set")
	}
	return nil
}

// FetchTimeout converts the configured timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Protocol.FetchTimeoutSeconds) * time.Second
}

// RateLimitInterval is the minimum wall-clock gap between fetches.
func (c Config) RateLimitInterval() time.Duration {
	return time.Duration(c.Protocol.RateLimitMs) * time.Millisecond
}
