package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Sentinel errors for highlighting.
var (
	ErrUnknownLanguage = errors.New("unknown code block language")
	ErrUnknownStyle    = errors.New("unknown code style")
)

// codeBlockRenderer renders indented blocks, and fenced blocks when fenced is
// set, the way the blog always has: tagged code through chroma, untagged code
// as escaped text.
type codeBlockRenderer struct {
	style     string
	formatter *chromahtml.Formatter
	fenced    bool
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	if r.fenced {
		reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	}
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var lang string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		lang = string(fenced.Language(source))
	}

	var code strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if lang == "" {
		_, _ = w.WriteString("\n<pre><code>")
		_, _ = w.WriteString(html.EscapeString(strings.TrimSpace(code.String())))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	}

	if err := r.highlight(w, lang, code.String()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (r *codeBlockRenderer) highlight(w util.BufWriter, lang, code string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenising %s code: %w", lang, err)
	}
	style, ok := lookupStyle(r.style)
	if !ok {
		style = styles.Fallback
	}
	if err := r.formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("formatting %s code: %w", lang, err)
	}
	return nil
}

// StyleCSS returns the stylesheet matching the class names emitted for
// highlighted code in the given chroma style.
func StyleCSS(style string) (string, error) {
	if style == "" {
		style = DefaultCodeStyle
	}
	s, ok := lookupStyle(style)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, s); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", style, err)
	}
	return b.String(), nil
}

// StyleNames lists the chroma styles StyleCSS accepts, sorted.
func StyleNames() []string {
	return styles.Names()
}

func lookupStyle(name string) (*chroma.Style, bool) {
	if s, ok := styles.Registry[name]; ok {
		return s, true
	}
	s, ok := styles.Registry[strings.ToLower(name)]
	return s, ok
}
