package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// markdownText flattens a markdown document to plain text by walking its AST.
// Headings, paragraphs and list items become separate lines; formatting
// markers are dropped so the chunker sees prose.
func markdownText(content []byte) (string, error) {
	reader := text.NewReader(content)
	doc := markdownParser.Parser().Parse(reader)

	var b strings.Builder

	breakLine := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			// Blank line before a heading keeps paragraph boundaries visible
			// to the chunker.
			breakLine()
			b.WriteString("\n")
			return ast.WalkContinue, nil

		case *ast.Paragraph:
			breakLine()
			return ast.WalkContinue, nil

		case *ast.ListItem:
			breakLine()
			return ast.WalkContinue, nil

		case *ast.Text:
			segment := node.Segment
			b.Write(segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteString("\n")
			}
			return ast.WalkContinue, nil

		case *ast.String:
			b.Write(node.Value)
			return ast.WalkContinue, nil

		case *ast.CodeBlock:
			breakLine()
			writeCodeLines(&b, node.Lines(), content)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			breakLine()
			writeCodeLines(&b, node.Lines(), content)
			return ast.WalkSkipChildren, nil

		default:
			return ast.WalkContinue, nil
		}
	})

	return b.String(), nil
}

func writeCodeLines(b *strings.Builder, lines *text.Segments, content []byte) {
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
}
