package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindInlineMark is the node kind of underline, highlight and quote spans.
var KindInlineMark = ast.NewNodeKind("InlineMark")

// InlineMark is an inline span rendered as a bare HTML element (u, mark, q).
type InlineMark struct {
	ast.BaseInline
	Tag string
}

// Kind implements ast.Node.
func (n *InlineMark) Kind() ast.NodeKind {
	return KindInlineMark
}

// Dump implements ast.Node.
func (n *InlineMark) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Tag": n.Tag}, nil)
}

// markDelimiter pairs a delimiter character with the element it produces.
// minRun is the shortest delimiter run that opens or closes a span.
type markDelimiter struct {
	char   byte
	minRun int
	tag    string
}

func (d *markDelimiter) IsDelimiter(b byte) bool {
	return b == d.char
}

func (d *markDelimiter) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (d *markDelimiter) OnMatch(consumes int) ast.Node {
	// Doubled underscores keep their CommonMark meaning.
	if d.char == '_' && consumes == 2 {
		return ast.NewEmphasis(2)
	}
	return &InlineMark{Tag: d.tag}
}

func (d *markDelimiter) Trigger() []byte {
	return []byte{d.char}
}

func (d *markDelimiter) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, d.minRun, d)
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

type inlineMarkRenderer struct{}

func (r *inlineMarkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMark, r.render)
}

func (r *inlineMarkRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*InlineMark)
	if entering {
		_, _ = w.WriteString("<" + n.Tag + ">")
	} else {
		_, _ = w.WriteString("</" + n.Tag + ">")
	}
	return ast.WalkContinue, nil
}

type inlineMarks struct{}

// InlineMarks adds _underline_, ==highlight== and "quote" spans.
// The underscore parser runs ahead of the emphasis parser, so a single
// underscore no longer means italics; use *asterisks* for that.
var InlineMarks = &inlineMarks{}

func (e *inlineMarks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&markDelimiter{char: '_', minRun: 1, tag: "u"}, 450),
		util.Prioritized(&markDelimiter{char: '=', minRun: 2, tag: "mark"}, 500),
		util.Prioritized(&markDelimiter{char: '"', minRun: 1, tag: "q"}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&inlineMarkRenderer{}, 500),
	))
}
