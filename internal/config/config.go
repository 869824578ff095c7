package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	blog "github.com/fangdaidai/blog-a"
	"github.com/fangdaidai/blog-a/internal/dateutil"
	"github.com/fangdaidai/blog-a/internal/fileutil"
	"github.com/fangdaidai/blog-a/internal/pipeline"
	"github.com/fangdaidai/blog-a/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength      = 100  // Author name
	MaxEmailLength     = 254  // RFC 5321
	MaxURLLength       = 2048 // Browser limit
	MaxTitleLength     = 200  // Site title
	MaxTimezoneLength  = 10   // "UTC+10:00"
	MaxCodeStyleLength = 50   // chroma style name
	MaxPathLength      = 4096 // PATH_MAX on Linux
)

// Defaults applied by ApplyDefaults.
const (
	DefaultPostsDir    = "posts"
	DefaultFeedEntries = 20
	DefaultConfigName  = "blog"
)

// Config is the blog.yaml file.
type Config struct {
	Author   string `yaml:"author"`
	Email    string `yaml:"email"`
	Timezone string `yaml:"timezone"` // "UTC+8:00"

	// EntryCountOnePage is the listing page size; 0 puts every post on page 1.
	// Nil means unset.
	EntryCountOnePage *int `yaml:"entryCountOnePage"`

	PostsDir string         `yaml:"postsDir"`
	Site     SiteConfig     `yaml:"site"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Feed     FeedConfig     `yaml:"feed"`
}

// SiteConfig describes the public site, used for absolute feed links.
type SiteConfig struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"` // "https://example.com/"
}

// MarkdownConfig controls body rendering.
type MarkdownConfig struct {
	CodeStyle       string `yaml:"codeStyle"`       // chroma style (default: github)
	StrictLanguages *bool  `yaml:"strictLanguages"` // unknown code languages fail (default: true)
}

// FeedConfig controls the Atom feed.
type FeedConfig struct {
	Entries int `yaml:"entries"` // newest posts in the feed (default: 20)
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig and again by the CLI once environment
// variables and flags have been merged.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"author", c.Author, MaxNameLength},
		{"email", c.Email, MaxEmailLength},
		{"timezone", c.Timezone, MaxTimezoneLength},
		{"postsDir", c.PostsDir, MaxPathLength},
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.url", c.Site.URL, MaxURLLength},
		{"markdown.codeStyle", c.Markdown.CodeStyle, MaxCodeStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Timezone != "" {
		if _, err := dateutil.ParseTimezoneOffset(c.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	if c.EntryCountOnePage != nil && *c.EntryCountOnePage < 0 {
		return fmt.Errorf("%w: entryCountOnePage must be >= 0, got %d", ErrInvalidValue, *c.EntryCountOnePage)
	}
	if c.Feed.Entries < 0 {
		return fmt.Errorf("%w: feed.entries must be >= 0, got %d", ErrInvalidValue, c.Feed.Entries)
	}
	if c.Site.URL != "" && !fileutil.IsURL(c.Site.URL) {
		return fmt.Errorf("%w: site.url must start with http:// or https://, got %q", ErrInvalidValue, c.Site.URL)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration; every field is unset.
func DefaultConfig() *Config {
	return &Config{}
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Timezone == "" {
		c.Timezone = blog.DefaultTimezone
	}
	if c.EntryCountOnePage == nil {
		n := blog.DefaultEntriesPerPage
		c.EntryCountOnePage = &n
	}
	if c.PostsDir == "" {
		c.PostsDir = DefaultPostsDir
	}
	if c.Markdown.CodeStyle == "" {
		c.Markdown.CodeStyle = pipeline.DefaultCodeStyle
	}
	if c.Markdown.StrictLanguages == nil {
		strict := true
		c.Markdown.StrictLanguages = &strict
	}
	if c.Feed.Entries == 0 {
		c.Feed.Entries = DefaultFeedEntries
	}
}

// EntriesPerPage returns the page size, or the default when unset.
func (c *Config) EntriesPerPage() int {
	if c.EntryCountOnePage == nil {
		return blog.DefaultEntriesPerPage
	}
	return *c.EntryCountOnePage
}

// StrictLanguages reports whether unknown code languages fail the render.
func (c *Config) StrictLanguages() bool {
	return c.Markdown.StrictLanguages == nil || *c.Markdown.StrictLanguages
}

// Blog returns the parser configuration.
func (c *Config) Blog() blog.Config {
	tz := c.Timezone
	if tz == "" {
		tz = blog.DefaultTimezone
	}
	return blog.Config{
		Author:         c.Author,
		Email:          c.Email,
		Timezone:       tz,
		EntriesPerPage: c.EntriesPerPage(),
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the files LoadConfig tries for a config name, in order:
// name.yaml and name.yml in the current directory, then in the user config
// directory under blog-a/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "blog-a", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
