package diff

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/example/sentinel/internal/models"
)

// InterfaceReport compares the pre and post content of one file and
// reports added, removed, and changed top-level symbols (functions,
// methods, exported types). The comparison is structural: two versions
// of a symbol that differ only in whitespace or comments are equal.
//
// Files in a language without a grammar yield an empty report.
func InterfaceReport(ctx context.Context, path string, pre, post []byte) (models.InterfaceReport, error) {
	report := models.InterfaceReport{Path: path}

	lang := languageFor(path)
	if lang == nil {
		return report, nil
	}

	before, err := extractSymbols(ctx, lang, pre)
	if err != nil {
		return report, fmt.Errorf("failed to parse pre-image of %s: %w", path, err)
	}
	after, err := extractSymbols(ctx, lang, post)
	if err != nil {
		return report, fmt.Errorf("failed to parse post-image of %s: %w", path, err)
	}

	for name, body := range after {
		prev, existed := before[name]
		switch {
		case !existed:
			report.SymbolsAdded = append(report.SymbolsAdded, name)
		case prev != body:
			report.SymbolsChanged = append(report.SymbolsChanged, name)
		}
	}
	for name := range before {
		if _, kept := after[name]; !kept {
			report.SymbolsRemoved = append(report.SymbolsRemoved, name)
		}
	}

	sort.Strings(report.SymbolsAdded)
	sort.Strings(report.SymbolsRemoved)
	sort.Strings(report.SymbolsChanged)

	return report, nil
}

func languageFor(path string) *sitter.Language {
	switch filepath.Ext(path) {
	case ".go":
		return golang.GetLanguage()
	case ".py":
		return python.GetLanguage()
	case ".js", ".jsx", ".mjs":
		return javascript.GetLanguage()
	case ".ts", ".tsx":
		return typescript.GetLanguage()
	default:
		return nil
	}
}

// extractSymbols maps each top-level symbol name to its normalized body.
func extractSymbols(ctx context.Context, lang *sitter.Language, source []byte) (map[string]string, error) {
	symbols := make(map[string]string)
	if len(source) == 0 {
		return symbols, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		collectSymbol(root.NamedChild(i), source, symbols)
	}

	return symbols, nil
}

// collectSymbol records the symbol declared by a top-level node, if any.
// Export and decorator wrappers are unwrapped so the symbol name stays
// stable across, for example, adding a decorator line.
func collectSymbol(node *sitter.Node, source []byte, symbols map[string]string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_declaration", "method_declaration", "function_definition",
		"class_declaration", "class_definition",
		"interface_declaration", "type_alias_declaration":
		if name := symbolName(node, source); name != "" {
			symbols[name] = normalize(node, source)
		}
	case "type_declaration":
		// Go groups type specs under one declaration node.
		for i := 0; i < int(node.NamedChildCount()); i++ {
			spec := node.NamedChild(i)
			if spec.Type() != "type_spec" {
				continue
			}
			if name := symbolName(spec, source); name != "" {
				symbols[name] = normalize(spec, source)
			}
		}
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			collectSymbol(decl, source, symbols)
		}
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			collectSymbol(def, source, symbols)
		}
	}
}

// symbolName resolves the declared name of a symbol node. Go methods are
// qualified by their receiver so same-named methods on different types
// stay distinct.
func symbolName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	if node.Type() == "method_declaration" {
		if recv := node.ChildByFieldName("receiver"); recv != nil {
			return normalize(recv, source) + "." + name.Content(source)
		}
	}
	return name.Content(source)
}

// normalize flattens a node to its token stream with comments dropped,
// so formatting and comment edits never register as symbol changes.
func normalize(node *sitter.Node, source []byte) string {
	var tokens []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if strings.Contains(n.Type(), "comment") {
			return
		}
		if n.ChildCount() == 0 {
			if text := strings.TrimSpace(n.Content(source)); text != "" {
				tokens = append(tokens, text)
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return strings.Join(tokens, " ")
}
