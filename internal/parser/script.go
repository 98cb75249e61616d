//go:build cgo

package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"codemap/internal/model"
)

// parseScript extracts functions, classes, imports, and exported names from a
// TypeScript or JavaScript source file. The grammar is selected per file:
// tsx for .tsx, typescript for .ts, javascript otherwise.
func (b *backend) parseScript(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	root, parseErr := b.parseTree(ctx, scriptLanguage(file.Path, file.Language), source)
	if parseErr != "" {
		return model.ModuleInfo{FileInfo: file, ParseError: parseErr}
	}

	info := model.ModuleInfo{FileInfo: file}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		b.scriptStatement(node, source, &info, false)
	}

	return info
}

// scriptStatement processes one top-level statement. exported marks
// declarations hoisted out of an export_statement.
func (b *backend) scriptStatement(node *sitter.Node, source []byte, info *model.ModuleInfo, exported bool) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		fn := scriptFunction(node, source, false)
		info.Functions = append(info.Functions, fn)
		if exported && fn.Name != "" {
			info.Exports = append(info.Exports, fn.Name)
		}

	case "class_declaration":
		cls := scriptClass(node, source)
		info.Classes = append(info.Classes, cls)
		if exported && cls.Name != "" {
			info.Exports = append(info.Exports, cls.Name)
		}

	case "lexical_declaration", "variable_declaration":
		for _, fn := range scriptArrowFunctions(node, source) {
			info.Functions = append(info.Functions, fn)
			if exported && fn.Name != "" {
				info.Exports = append(info.Exports, fn.Name)
			}
		}

	case "import_statement":
		if imp, ok := scriptImport(node, source); ok {
			info.Imports = append(info.Imports, imp)
		}

	case "export_statement":
		// Named re-exports: export { a, b }.
		if clause := childOfType(node, "export_clause"); clause != nil {
			for i := 0; i < int(clause.NamedChildCount()); i++ {
				spec := clause.NamedChild(i)
				if spec == nil || spec.Type() != "export_specifier" {
					continue
				}
				if name := spec.ChildByFieldName("name"); name != nil {
					info.Exports = append(info.Exports, nodeText(name, source))
				}
			}
			return
		}
		// export <declaration>: recurse with the exported flag set.
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			b.scriptStatement(decl, source, info, true)
		} else {
			for i := 0; i < int(node.NamedChildCount()); i++ {
				child := node.NamedChild(i)
				if child != nil {
					b.scriptStatement(child, source, info, true)
				}
			}
		}
	}
}

// scriptFunction extracts a function declaration or class method.
func scriptFunction(node *sitter.Node, source []byte, isMethod bool) model.FunctionInfo {
	fn := model.FunctionInfo{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		LineNumber: int(node.StartPoint().Row) + 1,
		IsMethod:   isMethod,
		IsAsync:    hasKeywordChild(node, "async"),
	}
	if fn.Name == "<expr>" {
		fn.Name = ""
	}

	sig := nodeText(node.ChildByFieldName("parameters"), source)
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += " " + strings.TrimPrefix(nodeText(ret, source), ": ")
	}
	fn.Signature = sig

	return fn
}

// scriptArrowFunctions finds `const f = (...) => ...` style declarations.
func scriptArrowFunctions(node *sitter.Node, source []byte) []model.FunctionInfo {
	var fns []model.FunctionInfo

	for i := 0; i < int(node.NamedChildCount()); i++ {
		decl := node.NamedChild(i)
		if decl == nil || decl.Type() != "variable_declarator" {
			continue
		}
		value := decl.ChildByFieldName("value")
		if value == nil {
			continue
		}
		if value.Type() != "arrow_function" && value.Type() != "function_expression" && value.Type() != "function" {
			continue
		}

		fn := model.FunctionInfo{
			Name:       nodeText(decl.ChildByFieldName("name"), source),
			Signature:  nodeText(value.ChildByFieldName("parameters"), source),
			LineNumber: int(decl.StartPoint().Row) + 1,
			IsAsync:    hasKeywordChild(value, "async"),
		}
		if fn.Signature == "<expr>" {
			// Single-parameter arrow without parentheses.
			if p := value.ChildByFieldName("parameter"); p != nil {
				fn.Signature = "(" + nodeText(p, source) + ")"
			}
		}
		fns = append(fns, fn)
	}

	return fns
}

// scriptClass extracts a class declaration with its heritage and methods.
func scriptClass(node *sitter.Node, source []byte) model.ClassInfo {
	cls := model.ClassInfo{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		LineNumber: int(node.StartPoint().Row) + 1,
	}

	if heritage := childOfType(node, "class_heritage"); heritage != nil {
		for i := 0; i < int(heritage.NamedChildCount()); i++ {
			base := heritage.NamedChild(i)
			if base != nil {
				cls.Bases = append(cls.Bases, nodeText(base, source))
			}
		}
		if len(cls.Bases) == 0 {
			// javascript grammar nests the base expression directly.
			text := strings.TrimPrefix(nodeText(heritage, source), "extends ")
			if text != "" {
				cls.Bases = append(cls.Bases, text)
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member == nil || member.Type() != "method_definition" {
			continue
		}
		cls.Methods = append(cls.Methods, scriptFunction(member, source, true))
	}

	return cls
}

// scriptImport extracts one ES import statement. Side-effect imports
// (`import "m"`) have no names and are not from-imports; anything importing
// bindings is treated as a from-import.
func scriptImport(node *sitter.Node, source []byte) (model.ImportInfo, bool) {
	imp := model.ImportInfo{}

	if src := node.ChildByFieldName("source"); src != nil {
		imp.Module = stringLiteralValue(src, source)
	}
	if imp.Module == "" {
		return imp, false
	}

	if clause := childOfType(node, "import_clause"); clause != nil {
		imp.Names = scriptImportNames(clause, source)
	}
	imp.IsFromImport = len(imp.Names) > 0

	return imp, true
}

func scriptImportNames(clause *sitter.Node, source []byte) []string {
	var names []string

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			// Default import.
			names = append(names, nodeText(child, source))
		case "namespace_import":
			// import * as ns
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if id := child.NamedChild(j); id != nil && id.Type() == "identifier" {
					names = append(names, nodeText(id, source))
				}
			}
		case "named_imports":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec == nil || spec.Type() != "import_specifier" {
					continue
				}
				if name := spec.ChildByFieldName("name"); name != nil {
					names = append(names, nodeText(name, source))
				}
			}
		}
	}

	return names
}
