package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Excerpt returns the first max characters of content with any markdown
// syntax stripped, for one-line list descriptions.
func Excerpt(content string, max int) string {
	if strings.TrimSpace(content) == "" || max <= 0 {
		return ""
	}

	source := []byte(content)
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	var b strings.Builder
	ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			switch n := n.(type) {
			case *ast.Text:
				if entering {
					b.Write(n.Segment.Value(source))
					if n.SoftLineBreak() || n.HardLineBreak() {
						b.WriteByte(' ')
					}
				}
			case *ast.CodeBlock, *ast.FencedCodeBlock:
				if entering {
					lines := n.Lines()
					for i := 0; i < lines.Len(); i++ {
						segment := lines.At(i)
						b.Write(segment.Value(source))
					}
				}
				return ast.WalkSkipChildren, nil
			default:
				if !entering && n.Type() == ast.TypeBlock {
					b.WriteByte(' ')
				}
			}
			return ast.WalkContinue, nil
		},
	)

	plain := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
