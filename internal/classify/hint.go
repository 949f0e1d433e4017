package classify

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// hintCandidates parses a hint line as markdown and returns the path-like
// tokens it may declare, in preference order. Markdown wrapping such as
// `path`, **path**, or ### Heading (path) is stripped via the inline AST
// rather than by pattern-matching the raw line.
func hintCandidates(hint string) []string {
	source := []byte(hint)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var codeSpans []string
	var plain string

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.CodeSpan:
			codeSpans = append(codeSpans, string(n.Text(source)))
			return ast.WalkSkipChildren, nil
		case *ast.Heading, *ast.Paragraph:
			if plain == "" {
				plain = strings.TrimSpace(string(n.Text(source)))
			}
		}
		return ast.WalkContinue, nil
	}
	if err := ast.Walk(root, walker); err != nil {
		return nil
	}

	var out []string
	// A code span is the strongest signal: `go run main.go` style command
	// lines are rejected later by the space check.
	for _, span := range codeSpans {
		out = append(out, strings.TrimSpace(span))
	}
	if plain != "" {
		out = append(out, plain)
		// Heading forms like "Some Comment (src/main.py)" declare the
		// path in a parenthesized tail.
		if open := strings.LastIndexByte(plain, '('); open >= 0 && strings.HasSuffix(plain, ")") {
			out = append(out, strings.TrimSpace(plain[open+1:len(plain)-1]))
		}
	}
	return out
}
