// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/blog-a/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/blog.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, filepath.Join(".config", "blog-a")) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForTimezone returns a hint about the offset syntax.
func ForTimezone() string {
	return format(`timezone must look like "UTC+8:00" or "UTC-5:30"`)
}

// ForMissingSeparator returns a hint about the header/body blank line.
func ForMissingSeparator() string {
	return format("leave a blank line after the header; a post without a header starts with a blank line")
}

// ForUnknownLanguage returns hints for code blocks tagged with an unknown language.
func ForUnknownLanguage() string {
	return formatHints([]string{
		"check the language tag after ```",
		"use --lenient or set markdown.strictLanguages: false to render it as plain code",
	})
}

// ForPostsDir returns hints for a missing or unreadable posts directory.
func ForPostsDir() string {
	return format("use --dir or set postsDir in blog.yaml")
}

// ForSiteURL returns a hint for a missing or relative site URL.
func ForSiteURL() string {
	return format("set site.url in blog.yaml or BLOG_SITE_URL, e.g. https://example.com/")
}

// ForCodeStyleNotFound returns hints for unknown chroma styles.
func ForCodeStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
