// Package pysrc parses Python source files into top-level statement and
// import structure using tree-sitter. It is read-only static analysis: the
// analyzed source is never executed.
package pysrc

import (
	"fmt"
	"os"
	"path/filepath"
)

// Index parses files on demand and caches the result by canonical path for
// the lifetime of one extraction run. It is owned by a single run and is not
// safe for concurrent use.
type Index struct {
	parser *parser
	files  map[string]*SourceFile
}

// NewIndex creates an empty index for one extraction run.
func NewIndex() *Index {
	return &Index{
		parser: newParser(),
		files:  make(map[string]*SourceFile),
	}
}

// Parse returns the parsed form of the file at path, reusing the cached
// result when the file was already reached via another import edge. Read and
// syntax failures do not surface as errors: the returned SourceFile carries
// the failure in its ParseErr field so the caller can record it and move on.
func (ix *Index) Parse(path string) *SourceFile {
	canonical := Canonical(path)

	if sf, ok := ix.files[canonical]; ok {
		return sf
	}

	var sf *SourceFile
	source, err := os.ReadFile(canonical)
	if err != nil {
		sf = &SourceFile{
			Path:     canonical,
			ParseErr: fmt.Sprintf("read failed: %v", err),
		}
	} else {
		sf = ix.parser.parseSource(canonical, source)
	}

	ix.files[canonical] = sf
	return sf
}

// Canonical normalizes a path to the absolute, cleaned form used as file
// identity throughout a run.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
