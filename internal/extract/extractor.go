// Package extract selects the retained subset of each discovered file and
// assembles the final extraction report.
package extract

import (
	"strings"

	"github.com/gkunal8019/extract-code/internal/depgraph"
	"github.com/gkunal8019/extract-code/internal/pysrc"
)

// Extract applies the retention rules to one parsed file:
//
//   - import statements are always retained (consumers need the same
//     external dependencies),
//   - top-level simple assignments are always retained (static analysis
//     cannot prove an assignment unused),
//   - function and class definitions are retained iff the requirement is
//     wildcard or names them,
//   - any other statement kind is retained only under wildcard.
//
// Under wildcard the original file is kept verbatim in full, comments and
// all. Statement order and source text are preserved; nothing is reformatted.
func Extract(sf *pysrc.SourceFile, req *depgraph.Requirement) Unit {
	unit := Unit{
		Path:       sf.Path,
		TotalLines: sf.TotalLines,
	}

	if sf.Failed() {
		unit.ParseFailed = true
		unit.FailReason = sf.ParseErr
		return unit
	}

	if req.Wildcard {
		unit.Wildcard = true
		unit.Content = strings.TrimRight(string(sf.Source), "\n")
		unit.RetainedLines = countLines(unit.Content)
		return unit
	}

	var b strings.Builder
	prevKind := pysrc.StatementKind("")
	for _, stmt := range sf.Statements {
		if !retain(stmt, req) {
			continue
		}
		if b.Len() > 0 {
			if blockStatement(stmt.Kind) || blockStatement(prevKind) {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString(stmt.Text)
		prevKind = stmt.Kind
	}

	unit.Content = b.String()
	unit.RetainedLines = countLines(unit.Content)
	return unit
}

func retain(stmt pysrc.Statement, req *depgraph.Requirement) bool {
	switch stmt.Kind {
	case pysrc.StmtImport, pysrc.StmtAssign:
		return true
	case pysrc.StmtFunction, pysrc.StmtClass:
		return req.Needs(stmt.Name)
	default:
		return false
	}
}

// blockStatement reports whether a statement kind gets a blank line around it.
func blockStatement(kind pysrc.StatementKind) bool {
	return kind == pysrc.StmtFunction || kind == pysrc.StmtClass
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
