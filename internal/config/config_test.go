package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	blog "github.com/fangdaidai/blog-a"
	"github.com/fangdaidai/blog-a/internal/dateutil"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func intPtr(n int) *int { return &n }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timezone != "" || cfg.PostsDir != "" || cfg.EntryCountOnePage != nil {
		t.Errorf("DefaultConfig() = %+v, want every field unset", cfg)
	}

	cfg.ApplyDefaults()
	if cfg.Timezone != "UTC+0:00" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "UTC+0:00")
	}
	if cfg.EntriesPerPage() != 10 {
		t.Errorf("EntriesPerPage() = %d, want 10", cfg.EntriesPerPage())
	}
	if cfg.PostsDir != "posts" {
		t.Errorf("PostsDir = %q, want %q", cfg.PostsDir, "posts")
	}
	if cfg.Markdown.CodeStyle != "github" {
		t.Errorf("Markdown.CodeStyle = %q, want %q", cfg.Markdown.CodeStyle, "github")
	}
	if !cfg.StrictLanguages() {
		t.Error("StrictLanguages() = false, want true")
	}
	if cfg.Feed.Entries != 20 {
		t.Errorf("Feed.Entries = %d, want 20", cfg.Feed.Entries)
	}
}

func TestApplyDefaults_KeepsExplicitZero(t *testing.T) {
	strict := false
	cfg := &Config{
		EntryCountOnePage: intPtr(0),
		Markdown:          MarkdownConfig{StrictLanguages: &strict},
	}
	cfg.ApplyDefaults()

	if cfg.EntriesPerPage() != 0 {
		t.Errorf("EntriesPerPage() = %d, want 0", cfg.EntriesPerPage())
	}
	if cfg.StrictLanguages() {
		t.Error("StrictLanguages() = true, want explicit false kept")
	}
}

func TestConfig_Blog(t *testing.T) {
	cfg := &Config{Author: "Jane", Email: "j@example.com", EntryCountOnePage: intPtr(3)}

	got := cfg.Blog()
	want := blog.Config{Author: "Jane", Email: "j@example.com", Timezone: "UTC+0:00", EntriesPerPage: 3}
	if got != want {
		t.Errorf("Blog() = %+v, want %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Blog().Validate() unexpected error: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"empty config is valid", Config{}, nil},
		{"full config is valid", Config{
			Author:            "Jane",
			Email:             "jane@example.com",
			Timezone:          "UTC-5:30",
			EntryCountOnePage: intPtr(0),
			Site:              SiteConfig{Title: "Blog", URL: "https://example.com/"},
		}, nil},
		{"author too long", Config{Author: strings.Repeat("a", MaxNameLength+1)}, ErrFieldTooLong},
		{"site title too long", Config{Site: SiteConfig{Title: strings.Repeat("t", MaxTitleLength+1)}}, ErrFieldTooLong},
		{"bad timezone", Config{Timezone: "UTC+8"}, dateutil.ErrInvalidTimezone},
		{"negative page size", Config{EntryCountOnePage: intPtr(-1)}, ErrInvalidValue},
		{"negative feed entries", Config{Feed: FeedConfig{Entries: -2}}, ErrInvalidValue},
		{"relative site url", Config{Site: SiteConfig{URL: "example.com"}}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, "blog.yaml", `author: "Jane Doe"
email: jane@example.com
timezone: UTC+8:00
entryCountOnePage: 0
postsDir: content/posts
site:
  title: "Jane's Blog"
  url: https://jane.example.com/
markdown:
  codeStyle: monokai
  strictLanguages: false
feed:
  entries: 5
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Author != "Jane Doe" || cfg.Email != "jane@example.com" {
			t.Errorf("Author, Email = %q, %q", cfg.Author, cfg.Email)
		}
		if cfg.Timezone != "UTC+8:00" {
			t.Errorf("Timezone = %q, want UTC+8:00", cfg.Timezone)
		}
		if cfg.EntryCountOnePage == nil || *cfg.EntryCountOnePage != 0 {
			t.Errorf("EntryCountOnePage = %v, want explicit 0", cfg.EntryCountOnePage)
		}
		if cfg.PostsDir != "content/posts" {
			t.Errorf("PostsDir = %q", cfg.PostsDir)
		}
		if cfg.Site.Title != "Jane's Blog" || cfg.Site.URL != "https://jane.example.com/" {
			t.Errorf("Site = %+v", cfg.Site)
		}
		if cfg.Markdown.CodeStyle != "monokai" || cfg.StrictLanguages() {
			t.Errorf("Markdown = %q strict=%v", cfg.Markdown.CodeStyle, cfg.StrictLanguages())
		}
		if cfg.Feed.Entries != 5 {
			t.Errorf("Feed.Entries = %d, want 5", cfg.Feed.Entries)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "invalid.yaml", "author: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, "unknown.yaml", "author: Jane\nentry_count_one_page: 3\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid timezone fails validation", func(t *testing.T) {
		path := writeConfig(t, "tz.yaml", "timezone: Europe/Paris\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, dateutil.ErrInvalidTimezone) {
			t.Errorf("error = %v, want ErrInvalidTimezone", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("author: fromname\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Author != "fromname" {
			t.Errorf("Author = %q, want %q", cfg.Author, "fromname")
		}
	})

	t.Run("config name not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		_, err := LoadConfig("nothere")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nothere.yaml") || !strings.Contains(err.Error(), filepath.Join("blog-a", "nothere.yml")) {
			t.Errorf("error %q should list tried paths", err)
		}
	})

	t.Run("config name resolves in user config dir", func(t *testing.T) {
		t.Chdir(t.TempDir())
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		if err := os.MkdirAll(filepath.Join(xdg, "blog-a"), 0750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(xdg, "blog-a", "site.yaml"), []byte("email: x@example.com\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Email != "x@example.com" {
			t.Errorf("Email = %q, want x@example.com", cfg.Email)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	got := SearchPaths("site")
	want := []string{
		"site.yaml",
		"site.yml",
		filepath.Join(xdg, "blog-a", "site.yaml"),
		filepath.Join(xdg, "blog-a", "site.yml"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("SearchPaths() = %v, want %v", got, want)
	}
}
