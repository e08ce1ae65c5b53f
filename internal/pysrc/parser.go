package pysrc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// parser wraps a tree-sitter Python parser. Parsing never executes the
// analyzed source.
type parser struct {
	language *sitter.Language
}

func newParser() *parser {
	return &parser{language: sitter.NewLanguage(python.Language())}
}

// parseSource builds a SourceFile from raw bytes. A malformed file comes back
// with ParseErr set and empty statement/import sets rather than an error.
func (p *parser) parseSource(path string, source []byte) *SourceFile {
	lines := strings.Split(string(source), "\n")

	// A trailing newline does not add a line to the count.
	total := len(lines)
	if total > 0 && lines[total-1] == "" {
		total--
	}

	sf := &SourceFile{
		Path:       path,
		Source:     source,
		Lines:      lines,
		TotalLines: total,
	}

	tsParser := sitter.NewParser()
	defer tsParser.Close()

	tsParser.SetLanguage(p.language)

	tree := tsParser.Parse(source, nil)
	if tree == nil {
		sf.ParseErr = "tree-sitter produced no syntax tree"
		return sf
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		sf.ParseErr = "syntax error"
		return sf
	}

	for i := 0; i < int(rootNode.ChildCount()); i++ {
		child := rootNode.Child(uint(i))
		p.collectStatement(child, source, lines, sf)
	}

	return sf
}

// collectStatement classifies one direct child of the module node and appends
// it (and any import references it carries) to the SourceFile.
func (p *parser) collectStatement(node *sitter.Node, source []byte, lines []string, sf *SourceFile) {
	startLine := int(node.StartPosition().Row) + 1
	endLine := int(node.EndPosition().Row) + 1

	stmt := Statement{
		Kind:      StmtOther,
		Text:      extractLines(lines, startLine, endLine),
		StartLine: startLine,
		EndLine:   endLine,
	}

	switch node.Kind() {
	case "import_statement":
		stmt.Kind = StmtImport
		sf.Imports = append(sf.Imports, p.moduleImports(node, source, startLine)...)

	case "import_from_statement":
		stmt.Kind = StmtImport
		if ref, ok := p.fromImport(node, source, startLine); ok {
			sf.Imports = append(sf.Imports, ref)
		}

	case "future_import_statement":
		// Retained as an import but never resolved to a file.
		stmt.Kind = StmtImport

	case "function_definition":
		stmt.Kind = StmtFunction
		stmt.Name = fieldText(node, "name", source)

	case "class_definition":
		stmt.Kind = StmtClass
		stmt.Name = fieldText(node, "name", source)

	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			switch def.Kind() {
			case "function_definition":
				stmt.Kind = StmtFunction
			case "class_definition":
				stmt.Kind = StmtClass
			}
			stmt.Name = fieldText(def, "name", source)
		}

	case "expression_statement":
		if name, ok := assignmentTarget(node, source); ok {
			stmt.Kind = StmtAssign
			stmt.Name = name
		}
	}

	sf.Statements = append(sf.Statements, stmt)
}

// moduleImports handles "import a.b, c as d" forms. Each module listed is a
// module-level import: the whole target is required, so wildcard is set.
func (p *parser) moduleImports(node *sitter.Node, source []byte, line int) []ImportReference {
	var refs []ImportReference
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "dotted_name":
			refs = append(refs, ImportReference{
				Module:   extractNodeText(child, source),
				Wildcard: true,
				Line:     line,
			})
		case "aliased_import":
			refs = append(refs, ImportReference{
				Module:   fieldText(child, "name", source),
				Wildcard: true,
				Line:     line,
			})
		}
	}
	return refs
}

// fromImport handles "from m import a, b as c" and "from m import *" forms,
// including relative modules ("from ..pkg import x").
func (p *parser) fromImport(node *sitter.Node, source []byte, line int) (ImportReference, bool) {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return ImportReference{}, false
	}

	spec := extractNodeText(moduleNode, source)
	module := strings.TrimLeft(spec, ".")

	ref := ImportReference{
		Module: module,
		Dots:   len(spec) - len(module),
		Line:   line,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		// The module node itself is a dotted_name too; skip it by position.
		if child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Kind() {
		case "wildcard_import":
			ref.Wildcard = true
		case "dotted_name":
			ref.Names = append(ref.Names, extractNodeText(child, source))
		case "aliased_import":
			// The original name is what matters for extraction, not the alias.
			ref.Names = append(ref.Names, fieldText(child, "name", source))
		}
	}

	return ref, true
}

// assignmentTarget returns the target name of a top-level "name = expr"
// statement. Tuple, attribute, and subscript targets are not simple
// assignments and are left classified as other statements.
func assignmentTarget(node *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "assignment" {
			continue
		}
		left := child.ChildByFieldName("left")
		if left != nil && left.Kind() == "identifier" {
			return extractNodeText(left, source), true
		}
	}
	return "", false
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

func fieldText(node *sitter.Node, field string, source []byte) string {
	return extractNodeText(node.ChildByFieldName(field), source)
}

// extractLines extracts source code lines from startLine to endLine (1-indexed).
func extractLines(lines []string, startLine, endLine int) string {
	if startLine < 1 || endLine < 1 || startLine > len(lines) {
		return ""
	}

	start := startLine - 1
	end := endLine
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}
