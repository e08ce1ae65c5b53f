package pysrc

// StatementKind classifies a top-level statement in a Python module.
type StatementKind string

const (
	StmtImport   StatementKind = "import"
	StmtAssign   StatementKind = "assignment"
	StmtFunction StatementKind = "function"
	StmtClass    StatementKind = "class"
	StmtOther    StatementKind = "other"
)

// Statement is one top-level statement of a parsed module, with its
// verbatim source text and 1-based line span.
type Statement struct {
	Kind      StatementKind
	Name      string // definition or assignment target name; empty for import/other
	Text      string
	StartLine int
	EndLine   int
}

// ImportReference is one import statement occurrence in a source file.
type ImportReference struct {
	Module   string   // dotted module specifier with relative dots stripped
	Dots     int      // leading relative-import dots (0 for absolute imports)
	Names    []string // imported names in statement order; nil for module-level imports
	Wildcard bool     // true for "import m" and "from m import *" forms
	Line     int
}

// SourceFile is one parsed Python file. Immutable once parsed; owned by the
// Index that produced it.
type SourceFile struct {
	Path       string // canonical absolute path
	Source     []byte
	Lines      []string
	TotalLines int
	ParseErr   string // non-empty when the file could not be read or parsed
	Statements []Statement
	Imports    []ImportReference
}

// Failed reports whether the file is in the parse-error state. Failed files
// carry no statements or imports and contribute nothing downstream.
func (sf *SourceFile) Failed() bool {
	return sf.ParseErr != ""
}
