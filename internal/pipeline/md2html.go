package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// HTMLRenderer abstracts Markdown to HTML conversion.
type HTMLRenderer interface {
	Render(markdown string) (string, error)
}

// Option configures a GoldmarkRenderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	style   string
	lenient bool
}

// WithStyle sets the chroma style for highlighted code.
func WithStyle(style string) Option {
	return func(c *rendererConfig) {
		if style != "" {
			c.style = style
		}
	}
}

// WithLenientLanguages renders fenced blocks with unknown language tags as
// plain code instead of failing.
func WithLenientLanguages() Option {
	return func(c *rendererConfig) {
		c.lenient = true
	}
}

// GoldmarkRenderer converts Markdown to HTML fragments using goldmark.
// It is safe for concurrent use.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// Compile-time interface check.
var _ HTMLRenderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer creates a renderer with the blog's Markdown dialect.
func NewGoldmarkRenderer(opts ...Option) *GoldmarkRenderer {
	cfg := rendererConfig{style: DefaultCodeStyle}
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		InlineMarks,
	}

	codeBlocks := &codeBlockRenderer{
		style:     cfg.style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		fenced:    !cfg.lenient,
	}
	if cfg.lenient {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.style),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			highlighting.WithGuessLanguage(false),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // authors write raw HTML in posts
			renderer.WithNodeRenderers(util.Prioritized(codeBlocks, 200)),
		),
	)
	return &GoldmarkRenderer{md: md}
}

// Render converts a Markdown post body to an HTML fragment.
// A code block tagged with an unknown language fails with ErrUnknownLanguage
// unless the renderer is lenient.
func (r *GoldmarkRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		if errors.Is(err, ErrUnknownLanguage) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
