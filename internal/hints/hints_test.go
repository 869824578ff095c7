package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestHints - Every hint names the fix it suggests
// ---------------------------------------------------------------------------

func TestHints(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("/home/jane", ".config", "blog-a", "blog.yaml")

	tests := []struct {
		name string
		hint string
		want []string
	}{
		{"config not found, nothing searched", ForConfigNotFound(nil), []string{"--config"}},
		{"config not found, user dir searched", ForConfigNotFound([]string{"blog.yaml", "blog.yml", userPath}), []string{"--config", "or create " + userPath}},
		{"config not found, local only", ForConfigNotFound([]string{"blog.yaml"}), []string{"--config"}},
		{"timezone", ForTimezone(), []string{"UTC+8:00", "UTC-5:30"}},
		{"missing separator", ForMissingSeparator(), []string{"blank line"}},
		{"unknown language", ForUnknownLanguage(), []string{"```", "--lenient", "strictLanguages"}},
		{"posts dir", ForPostsDir(), []string{"--dir", "postsDir"}},
		{"site url", ForSiteURL(), []string{"site.url", "BLOG_SITE_URL"}},
		{"code styles", ForCodeStyleNotFound([]string{"github", "monokai"}), []string{"available: github, monokai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint = %q, want prefix %q", tt.hint, "\n  hint: ")
			}
			if n := strings.Count(tt.hint, "hint:"); n != 1 {
				t.Errorf("hint has %d hint: markers, want 1", n)
			}
			for _, w := range tt.want {
				if !strings.Contains(tt.hint, w) {
					t.Errorf("hint = %q, want it to contain %q", tt.hint, w)
				}
			}
		})
	}

	if strings.Contains(ForConfigNotFound([]string{"blog.yaml"}), "or create") {
		t.Error("ForConfigNotFound() suggests creating a local path")
	}
}

func TestForCodeStyleNotFound_NoStyles(t *testing.T) {
	t.Parallel()

	if got := ForCodeStyleNotFound(nil); got != "" {
		t.Errorf("ForCodeStyleNotFound(nil) = %q, want empty", got)
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got, want := formatHints([]string{"a", "b"}), "\n  hint: a; b"; got != want {
		t.Errorf("formatHints() = %q, want %q", got, want)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
