package main

// Notes:
// - loadEnvConfig: we test every BLOG_* variable. Invalid or negative numbers
//   and unknown log levels are ignored, not errors.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test priority behavior (env doesn't override config,
//   including an explicit zero page size).
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fangdaidai/blog-a/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("BLOG_CONFIG", "/etc/blog.yaml")
		t.Setenv("BLOG_POSTS_DIR", "content")
		t.Setenv("BLOG_AUTHOR", "Jane")
		t.Setenv("BLOG_EMAIL", "jane@example.com")
		t.Setenv("BLOG_TIMEZONE", "UTC-5:30")
		t.Setenv("BLOG_SITE_URL", "https://example.com/")
		t.Setenv("BLOG_ENTRIES_PER_PAGE", "0")
		t.Setenv("BLOG_CODE_STYLE", "monokai")
		t.Setenv("BLOG_WORKERS", "3")
		t.Setenv("BLOG_LOG_LEVEL", "debug")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "/etc/blog.yaml" || cfg.PostsDir != "content" {
			t.Errorf("ConfigPath, PostsDir = %q, %q", cfg.ConfigPath, cfg.PostsDir)
		}
		if cfg.Author != "Jane" || cfg.Email != "jane@example.com" {
			t.Errorf("Author, Email = %q, %q", cfg.Author, cfg.Email)
		}
		if cfg.Timezone != "UTC-5:30" || cfg.SiteURL != "https://example.com/" {
			t.Errorf("Timezone, SiteURL = %q, %q", cfg.Timezone, cfg.SiteURL)
		}
		if cfg.EntriesPerPage == nil || *cfg.EntriesPerPage != 0 {
			t.Errorf("EntriesPerPage = %v, want explicit 0", cfg.EntriesPerPage)
		}
		if cfg.CodeStyle != "monokai" {
			t.Errorf("CodeStyle = %q, want monokai", cfg.CodeStyle)
		}
		if cfg.Workers != 3 {
			t.Errorf("Workers = %d, want 3", cfg.Workers)
		}
		if !cfg.LogLevelSet || cfg.LogLevel != slog.LevelDebug {
			t.Errorf("LogLevel = %v (set=%v), want DEBUG", cfg.LogLevel, cfg.LogLevelSet)
		}
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv("BLOG_ENTRIES_PER_PAGE", "-1")
		t.Setenv("BLOG_WORKERS", "many")
		t.Setenv("BLOG_LOG_LEVEL", "loud")

		cfg := loadEnvConfig()

		if cfg.EntriesPerPage != nil {
			t.Errorf("EntriesPerPage = %d, want unset", *cfg.EntriesPerPage)
		}
		if cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
		if cfg.LogLevelSet {
			t.Errorf("LogLevel = %v, want unset", cfg.LogLevel)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("BLOG_TIMEZON", "UTC+1:00")
	t.Setenv("BLOG_TIMEZONE", "UTC+1:00")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "BLOG_TIMEZON ") {
		t.Errorf("expected warning for BLOG_TIMEZON, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "BLOG_TIMEZONE") {
		t.Errorf("known variable should not warn, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Config wins over environment
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	three := 3
	env := &envConfig{
		PostsDir:       "env-posts",
		Author:         "Env Author",
		Email:          "env@example.com",
		Timezone:       "UTC+1:00",
		SiteURL:        "https://env.example.com/",
		EntriesPerPage: &three,
		CodeStyle:      "monokai",
	}

	t.Run("fills unset fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.PostsDir != "env-posts" || cfg.Author != "Env Author" || cfg.Email != "env@example.com" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Timezone != "UTC+1:00" || cfg.Site.URL != "https://env.example.com/" {
			t.Errorf("Timezone, Site.URL = %q, %q", cfg.Timezone, cfg.Site.URL)
		}
		if cfg.EntriesPerPage() != 3 || cfg.Markdown.CodeStyle != "monokai" {
			t.Errorf("EntriesPerPage, CodeStyle = %d, %q", cfg.EntriesPerPage(), cfg.Markdown.CodeStyle)
		}
	})

	t.Run("keeps config values", func(t *testing.T) {
		t.Parallel()

		zero := 0
		cfg := &config.Config{
			PostsDir:          "posts",
			Author:            "Jane",
			Timezone:          "UTC+8:00",
			EntryCountOnePage: &zero,
			Markdown:          config.MarkdownConfig{CodeStyle: "github"},
		}
		applyEnvConfig(env, cfg)

		if cfg.PostsDir != "posts" || cfg.Author != "Jane" || cfg.Timezone != "UTC+8:00" {
			t.Errorf("cfg = %+v, want config values kept", cfg)
		}
		if cfg.EntriesPerPage() != 0 {
			t.Errorf("EntriesPerPage() = %d, want explicit 0 kept", cfg.EntriesPerPage())
		}
		if cfg.Markdown.CodeStyle != "github" {
			t.Errorf("CodeStyle = %q, want github", cfg.Markdown.CodeStyle)
		}
		if cfg.Email != "env@example.com" {
			t.Errorf("Email = %q, want unset field filled", cfg.Email)
		}
	})
}
