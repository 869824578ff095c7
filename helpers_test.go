package blog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePosts creates files in a fresh temp dir and returns the dir.
func writePosts(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

// newTestParser builds a parser with a fixed author and a +8:00 fallback zone.
func newTestParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()

	cfg := Config{
		Author:         "Jane Doe",
		Email:          "jane@example.com",
		Timezone:       "UTC+8:00",
		EntriesPerPage: 2,
	}
	p, err := NewParser(cfg, opts...)
	if err != nil {
		t.Fatalf("NewParser() unexpected error: %v", err)
	}
	return p
}

// stubRenderer wraps the body in a marker so tests can see it was rendered.
type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(markdown string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<rendered>" + strings.TrimSpace(markdown) + "</rendered>", nil
}

func filenames(posts []*Post) []string {
	names := make([]string, len(posts))
	for i, p := range posts {
		names[i] = p.Filename
	}
	return names
}
