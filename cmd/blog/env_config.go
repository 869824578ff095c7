package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fangdaidai/blog-a/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // BLOG_CONFIG: config file name or path
	PostsDir   string // BLOG_POSTS_DIR: posts directory

	// Tier 2 - Identity
	Author   string // BLOG_AUTHOR: default post author
	Email    string // BLOG_EMAIL: default post email
	Timezone string // BLOG_TIMEZONE: "UTC+8:00"
	SiteURL  string // BLOG_SITE_URL: base URL for feed links

	// Tier 3 - Extended
	EntriesPerPage *int       // BLOG_ENTRIES_PER_PAGE: page size (0 = all)
	CodeStyle      string     // BLOG_CODE_STYLE: chroma style
	Workers        int        // BLOG_WORKERS: parallel workers
	LogLevel       slog.Level // BLOG_LOG_LEVEL: debug, info, warn, error
	LogLevelSet    bool
}

// knownEnvVars lists valid BLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"BLOG_CONFIG":    true,
	"BLOG_POSTS_DIR": true,
	// Tier 2 - Identity
	"BLOG_AUTHOR":   true,
	"BLOG_EMAIL":    true,
	"BLOG_TIMEZONE": true,
	"BLOG_SITE_URL": true,
	// Tier 3 - Extended
	"BLOG_ENTRIES_PER_PAGE": true,
	"BLOG_CODE_STYLE":       true,
	"BLOG_WORKERS":          true,
	"BLOG_LOG_LEVEL":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers and levels are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("BLOG_CONFIG"),
		PostsDir:   os.Getenv("BLOG_POSTS_DIR"),
		// Tier 2
		Author:   os.Getenv("BLOG_AUTHOR"),
		Email:    os.Getenv("BLOG_EMAIL"),
		Timezone: os.Getenv("BLOG_TIMEZONE"),
		SiteURL:  os.Getenv("BLOG_SITE_URL"),
		// Tier 3
		CodeStyle: os.Getenv("BLOG_CODE_STYLE"),
	}

	if v := os.Getenv("BLOG_ENTRIES_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.EntriesPerPage = &n
		}
	}

	if v := os.Getenv("BLOG_WORKERS"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if v := os.Getenv("BLOG_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = level
			cfg.LogLevelSet = true
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized BLOG_* variables.
// Helps catch typos like BLOG_TIMEZON instead of BLOG_TIMEZONE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "BLOG_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is unset.
// This ensures: CLI flags > config file > env vars > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.PostsDir != "" && cfg.PostsDir == "" {
		cfg.PostsDir = env.PostsDir
	}

	// Tier 2
	if env.Author != "" && cfg.Author == "" {
		cfg.Author = env.Author
	}
	if env.Email != "" && cfg.Email == "" {
		cfg.Email = env.Email
	}
	if env.Timezone != "" && cfg.Timezone == "" {
		cfg.Timezone = env.Timezone
	}
	if env.SiteURL != "" && cfg.Site.URL == "" {
		cfg.Site.URL = env.SiteURL
	}

	// Tier 3
	if env.EntriesPerPage != nil && cfg.EntryCountOnePage == nil {
		n := *env.EntriesPerPage
		cfg.EntryCountOnePage = &n
	}
	if env.CodeStyle != "" && cfg.Markdown.CodeStyle == "" {
		cfg.Markdown.CodeStyle = env.CodeStyle
	}
}
