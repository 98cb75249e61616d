//go:build cgo

package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"codemap/internal/model"
)

// parsePython extracts module docstring, functions, classes, imports, and the
// __all__ export list from one Python source file. Syntax errors are reported
// in-band; the AST lists stay empty in that case.
func (b *backend) parsePython(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	root, parseErr := b.parseTree(ctx, python.GetLanguage(), source)
	if parseErr != "" {
		return model.ModuleInfo{FileInfo: file, ParseError: parseErr}
	}

	info := model.ModuleInfo{FileInfo: file}
	info.ModuleDocstring = blockDocstring(root, source)

	sawDunderAll := false

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}

		switch node.Type() {
		case "function_definition":
			info.Functions = append(info.Functions, pyFunction(node, source, nil, false))

		case "decorated_definition":
			decorators, inner := pyDecorated(node, source)
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "function_definition":
				info.Functions = append(info.Functions, pyFunction(inner, source, decorators, false))
			case "class_definition":
				info.Classes = append(info.Classes, pyClass(inner, source))
			}

		case "class_definition":
			info.Classes = append(info.Classes, pyClass(node, source))

		case "import_statement":
			info.Imports = append(info.Imports, pyPlainImports(node, source)...)

		case "import_from_statement":
			info.Imports = append(info.Imports, pyFromImport(node, source))

		case "expression_statement":
			if exports, ok := pyDunderAll(node, source); ok {
				// The most recent assignment wins.
				info.Exports = exports
				sawDunderAll = true
			}
		}
	}

	if sawDunderAll && info.Exports == nil {
		info.Exports = []string{}
	}

	return info
}

// pyDecorated splits a decorated_definition into rendered decorator strings
// and the wrapped definition node.
func pyDecorated(node *sitter.Node, source []byte) ([]string, *sitter.Node) {
	var decorators []string
	var inner *sitter.Node

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "decorator":
			decorators = append(decorators, strings.TrimPrefix(nodeText(child, source), "@"))
		case "function_definition", "class_definition":
			inner = child
		}
	}

	return decorators, inner
}

// pyFunction extracts one function or method.
func pyFunction(node *sitter.Node, source []byte, decorators []string, isMethod bool) model.FunctionInfo {
	fn := model.FunctionInfo{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		LineNumber: int(node.StartPoint().Row) + 1,
		IsMethod:   isMethod,
		IsAsync:    hasKeywordChild(node, "async"),
		Decorators: decorators,
	}

	sig := nodeText(node.ChildByFieldName("parameters"), source)
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + nodeText(ret, source)
	}
	fn.Signature = sig

	if body := node.ChildByFieldName("body"); body != nil {
		fn.Docstring = blockDocstring(body, source)
	}

	return fn
}

// pyClass extracts one class with its base expressions and methods in source
// order. Anything defined inside the class body is a method.
func pyClass(node *sitter.Node, source []byte) model.ClassInfo {
	cls := model.ClassInfo{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		LineNumber: int(node.StartPoint().Row) + 1,
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			base := supers.NamedChild(i)
			if base != nil {
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	cls.Docstring = blockDocstring(body, source)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "function_definition":
			cls.Methods = append(cls.Methods, pyFunction(child, source, nil, true))
		case "decorated_definition":
			decorators, inner := pyDecorated(child, source)
			if inner != nil && inner.Type() == "function_definition" {
				cls.Methods = append(cls.Methods, pyFunction(inner, source, decorators, true))
			}
		}
	}

	return cls
}

// pyPlainImports handles `import x` and `import x, y as z`: one ImportInfo
// per imported module, names always empty.
func pyPlainImports(node *sitter.Node, source []byte) []model.ImportInfo {
	var imports []model.ImportInfo

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			imports = append(imports, model.ImportInfo{Module: nodeText(child, source)})
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				imports = append(imports, model.ImportInfo{Module: nodeText(name, source)})
			}
		}
	}

	return imports
}

// pyFromImport handles `from x import a, b`, including relative imports where
// the module renders as its dot-prefixed source text.
func pyFromImport(node *sitter.Node, source []byte) model.ImportInfo {
	imp := model.ImportInfo{IsFromImport: true}

	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode != nil {
		imp.Module = nodeText(moduleNode, source)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, nodeText(child, source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				imp.Names = append(imp.Names, nodeText(name, source))
			}
		case "wildcard_import":
			imp.Names = append(imp.Names, "*")
		}
	}

	return imp
}

// pyDunderAll recognizes a module-level `__all__ = [...]` assignment. Only a
// literal list or tuple of string constants yields exports; any other form
// yields an explicit empty list rather than guessed contents.
func pyDunderAll(stmt *sitter.Node, source []byte) ([]string, bool) {
	assign := childOfType(stmt, "assignment")
	if assign == nil {
		return nil, false
	}

	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" || nodeText(left, source) != "__all__" {
		return nil, false
	}

	right := assign.ChildByFieldName("right")
	if right == nil {
		return nil, true
	}
	if right.Type() != "list" && right.Type() != "tuple" {
		return nil, true
	}

	var exports []string
	for i := 0; i < int(right.NamedChildCount()); i++ {
		el := right.NamedChild(i)
		if el == nil {
			continue
		}
		if el.Type() != "string" {
			// Mixed literal: stay conservative, no partial extraction.
			return nil, true
		}
		exports = append(exports, stringLiteralValue(el, source))
	}

	return exports, true
}

// blockDocstring returns the docstring of a module or block node: the value
// of a string expression appearing as the first statement.
func blockDocstring(block *sitter.Node, source []byte) string {
	if block == nil || block.NamedChildCount() == 0 {
		return ""
	}
	first := block.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" {
		return ""
	}
	str := childOfType(first, "string")
	if str == nil {
		return ""
	}
	return stringLiteralValue(str, source)
}
