package blog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fangdaidai/blog-a/internal/dateutil"
	"github.com/fangdaidai/blog-a/internal/pipeline"
	"github.com/fangdaidai/blog-a/internal/yamlutil"
)

// Renderer converts a Markdown post body to HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Option configures a Parser.
type Option func(*Parser)

// WithRenderer replaces the goldmark renderer.
func WithRenderer(r Renderer) Option {
	return func(p *Parser) {
		p.renderer = r
	}
}

// WithLogger sets the logger for per-file debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCodeStyle sets the chroma style for highlighted code.
// Ignored when WithRenderer is also given.
func WithCodeStyle(style string) Option {
	return func(p *Parser) {
		p.codeStyle = style
	}
}

// WithLenientHighlighting renders fenced blocks with unknown language tags as
// plain code instead of failing with ErrUnknownLanguage.
// Ignored when WithRenderer is also given.
func WithLenientHighlighting() Option {
	return func(p *Parser) {
		p.lenient = true
	}
}

// Parser turns post files into Posts. It is safe for concurrent use.
type Parser struct {
	cfg       Config
	renderer  Renderer
	logger    *slog.Logger
	codeStyle string
	lenient   bool
}

// NewParser validates cfg and builds a parser around it.
func NewParser(cfg Config, opts ...Option) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		cfg:       cfg,
		logger:    slog.New(slog.DiscardHandler),
		codeStyle: pipeline.DefaultCodeStyle,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.renderer == nil {
		ropts := []pipeline.Option{pipeline.WithStyle(p.codeStyle)}
		if p.lenient {
			ropts = append(ropts, pipeline.WithLenientLanguages())
		}
		p.renderer = pipeline.NewGoldmarkRenderer(ropts...)
	}
	return p, nil
}

// Config returns the configuration the parser was built with.
func (p *Parser) Config() Config {
	return p.cfg
}

// ParseFile reads and parses one post file.
//
// The file is split at its first blank line. The part before it is a YAML
// mapping whose keys override the defaults taken from the file name; the part
// after it is Markdown rendered into Body.
func (p *Parser) ParseFile(path string) (*Post, error) {
	post, body, err := p.parse(path, false)
	if err != nil {
		return nil, err
	}

	html, err := p.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, post.Filename, err)
	}
	post.Body = html

	p.logger.Debug("parsed post", "file", post.Filename, "title", post.Title)
	return post, nil
}

// ParseHeader parses a post's metadata without rendering its body.
// Only the header is read from disk; Body is left empty.
func (p *Parser) ParseHeader(path string) (*Post, error) {
	post, _, err := p.parse(path, true)
	return post, err
}

// ParsePosts parses the posts in dir, newest first.
// A zero count parses every post; otherwise at most count posts starting at
// index start. The first failing file aborts the batch.
func (p *Parser) ParsePosts(dir string, start, count int) ([]*Post, error) {
	if start < 0 {
		return nil, fmt.Errorf("%w: start must be >= 0, got %d", ErrInvalidRange, start)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidRange, count)
	}

	files, err := ListPostFiles(dir)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		files = window(files, start, start+min(count, len(files)-start))
	}
	return p.ParsePostFiles(dir, files)
}

// ParsePostFiles parses the named files in dir in the given order, with no
// discovery or windowing.
func (p *Parser) ParsePostFiles(dir string, files []string) ([]*Post, error) {
	posts := make([]*Post, 0, len(files))
	for _, name := range files {
		post, err := p.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// window clamps [start, end) to s.
func window(s []string, start, end int) []string {
	start = min(max(start, 0), len(s))
	end = max(min(end, len(s)), start)
	return s[start:end]
}

// parse builds the post metadata and returns the Markdown body.
func (p *Parser) parse(path string, headerOnly bool) (*Post, string, error) {
	name := filepath.Base(path)
	fn, err := ParsePostFilename(name)
	if err != nil {
		return nil, "", err
	}

	var header, body string
	if headerOnly {
		header, err = readHeader(path)
	} else {
		header, body, err = readPost(path)
	}
	if err != nil {
		return nil, "", err
	}

	fields, err := yamlutil.DecodeMapping([]byte(header))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrInvalidHeader, name, err)
	}

	post, err := p.buildPost(fn, fields)
	if err != nil {
		return nil, "", err
	}
	return post, body, nil
}

// buildPost applies header fields over the defaults derived from fn and
// normalizes the dates.
func (p *Parser) buildPost(fn PostFilename, fields map[string]any) (*Post, error) {
	date, err := fn.Date()
	if err != nil {
		return nil, err
	}

	post := &Post{
		Layout:   DefaultLayout,
		Author:   p.cfg.Author,
		Email:    p.cfg.Email,
		Title:    fn.Title(),
		URL:      fn.URL(),
		Extra:    map[string]any{},
		Filename: fn.Name,
	}
	var updated *DateTime

	for key, v := range fields {
		switch key {
		case "layout", "author", "email", "title", "url":
			if v == nil {
				continue
			}
			s, err := scalarString(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %q: %w", ErrInvalidHeader, fn.Name, key, err)
			}
			setStringField(post, key, s)
		case "date", "updated":
			if v == nil {
				continue
			}
			dt, err := dateutil.ParseValue(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %q: %w", ErrInvalidHeader, fn.Name, key, err)
			}
			if key == "date" {
				date = dt
			} else {
				updated = &dt
			}
		case "body":
			// Always the rendered Markdown.
		default:
			post.Extra[key] = v
		}
	}

	post.Date, err = p.normalize(date, fn.Name)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		t, err := p.normalize(*updated, fn.Name)
		if err != nil {
			return nil, err
		}
		post.Updated = &t
	}
	return post, nil
}

func (p *Parser) normalize(dt DateTime, name string) (time.Time, error) {
	n, err := dateutil.Normalize(dt, p.cfg.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}
	return n.Time, nil
}

func setStringField(post *Post, key, value string) {
	switch key {
	case "layout":
		post.Layout = value
	case "author":
		post.Author = value
	case "email":
		post.Email = value
	case "title":
		post.Title = value
	case "url":
		post.URL = value
	}
}

// scalarString stringifies a YAML scalar. Mappings and sequences are rejected.
func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		return formatFloat(val), nil
	case bool, int, int64, uint64:
		return fmt.Sprint(val), nil
	default:
		return "", fmt.Errorf("want a scalar, got %T", v)
	}
}

// formatFloat writes f with every significant digit and a fractional part,
// so "1.0" stays "1.0" and "1e3" becomes "1000.0". Very large and very small
// magnitudes use an exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// readPost reads a post file and splits it at the first blank line.
func readPost(path string) (header, body string, err error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the posts directory listing or the caller
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadPost, err)
	}
	if !utf8.Valid(data) {
		return "", "", fmt.Errorf("%w: %s is not valid UTF-8", ErrReadPost, filepath.Base(path))
	}

	content := pipeline.NormalizeLineEndings(string(data))
	header, body, ok := strings.Cut(content, "\n\n")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrMissingSeparator, filepath.Base(path))
	}
	return header, body, nil
}

// readHeader reads lines up to the first blank line.
func readHeader(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the posts directory listing or the caller
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadPost, err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" && err == nil {
			return b.String(), nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %s", ErrMissingSeparator, filepath.Base(path))
			}
			return "", fmt.Errorf("%w: %w", ErrReadPost, err)
		}
		if !utf8.ValidString(line) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrReadPost, filepath.Base(path))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
