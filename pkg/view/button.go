package view

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultButtonClass is the CSS class of rendered buttons.
const DefaultButtonClass = "btn"

// buttonPrefix is the syntax prefix that triggers button parsing.
const buttonPrefix = "[!button|"

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link written as [!button|Label](url).
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// Kind implements ast.Node.
func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

// Dump implements ast.Node.
func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, []byte(buttonPrefix))
	if !ok {
		return nil
	}

	label, rest, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.ContainsRune(label, ']') {
		return nil
	}
	url, _, ok := bytes.Cut(rest, []byte(")"))
	if !ok {
		return nil
	}

	block.Advance(len(buttonPrefix) + len(label) + 2 + len(url) + 1)
	return &ButtonNode{URL: url, Label: label}
}

type buttonRenderer struct {
	class string
}

func (r buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.render)
}

func (r buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ButtonNode)

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(n.URL))
	_, _ = w.WriteString(`" class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.class)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

type buttonExtension struct {
	class string
}

func (e buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(buttonParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(buttonRenderer{class: e.class}, 50),
	))
}

// NewButtonExtension returns a goldmark extension rendering
// [!button|Label](url) as a link with the given CSS class.
// An empty class falls back to DefaultButtonClass.
func NewButtonExtension(class string) goldmark.Extender {
	if class == "" {
		class = DefaultButtonClass
	}
	return buttonExtension{class: class}
}
