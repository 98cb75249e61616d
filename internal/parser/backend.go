//go:build cgo

package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"codemap/internal/model"
)

// backend wraps a tree-sitter parser. All parsing is single-threaded, so one
// parser instance is reused with SetLanguage per call.
type backend struct {
	parser *sitter.Parser
}

func newBackend() *backend {
	return &backend{parser: sitter.NewParser()}
}

func backendAvailable() bool {
	return true
}

// parseTree parses source with the given grammar and returns the root node.
// A nil root or a tree containing error nodes is reported as a syntax error
// string; the caller turns that into an in-band parse_error.
func (b *backend) parseTree(ctx context.Context, lang *sitter.Language, source []byte) (*sitter.Node, string) {
	b.parser.SetLanguage(lang)
	tree, err := b.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Sprintf("SyntaxError: %v", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, "SyntaxError: failed to parse source"
	}
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, fmt.Sprintf("SyntaxError: invalid syntax at line %d", line)
	}
	return root, ""
}

// scriptLanguage selects the grammar for a TypeScript or JavaScript file.
func scriptLanguage(path string, lang model.Language) *sitter.Language {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".tsx":
		return tsx.GetLanguage()
	case lang == model.LangTypeScript:
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// firstErrorLine finds the 1-indexed line of the first ERROR or MISSING node.
func firstErrorLine(root *sitter.Node) int {
	line := int(root.StartPoint().Row) + 1

	var walk func(*sitter.Node) bool
	walk = func(node *sitter.Node) bool {
		if node == nil {
			return false
		}
		if node.Type() == "ERROR" || node.IsMissing() {
			line = int(node.StartPoint().Row) + 1
			return true
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			if walk(node.Child(i)) {
				return true
			}
		}
		return false
	}
	walk(root)
	return line
}

// nodeText renders a node back to its source text with whitespace collapsed.
// Falls back to a placeholder rather than panicking on a degenerate range.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return "<expr>"
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= end || int(end) > len(source) {
		return "<expr>"
	}
	return collapseWhitespace(string(source[start:end]))
}

// collapseWhitespace joins any run of whitespace into one space so that
// multi-line expressions render as a single source-like string.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// childOfType returns the first named child with the given type.
func childOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}

// hasKeywordChild reports whether a node carries the given anonymous keyword
// token, e.g. "async" on a function definition.
func hasKeywordChild(node *sitter.Node, keyword string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == keyword {
			return true
		}
	}
	return false
}

// stringLiteralValue unwraps a string literal node: strips prefixes like
// r/b/f/u and the surrounding quote run, then trims surrounding whitespace.
func stringLiteralValue(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= end || int(end) > len(source) {
		return ""
	}
	text := string(source[start:end])

	// Drop string prefix characters before the first quote.
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		i++
	}
	text = text[i:]
	if len(text) < 2 {
		return ""
	}

	quote := text[0]
	triple := string(quote) + string(quote) + string(quote)
	if strings.HasPrefix(text, triple) && strings.HasSuffix(text, triple) && len(text) >= 6 {
		text = text[3 : len(text)-3]
	} else if text[len(text)-1] == quote {
		text = text[1 : len(text)-1]
	}

	return strings.TrimSpace(text)
}
