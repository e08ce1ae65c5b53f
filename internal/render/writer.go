package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gkunal8019/extract-code/internal/depgraph"
	"github.com/gkunal8019/extract-code/internal/extract"
)

const (
	ruleWide   = "================================================================================"
	ruleNarrow = "============================================================"
)

// WriteArtifact renders the report into the consolidated output file:
// summary header, directory tree, then one block per extracted file in
// discovery order. The directory tree is drawn from the finalized import
// graph's vertex set. Output is deterministic for identical inputs.
func WriteArtifact(report *extract.Report, g *depgraph.Graph, outputPath string, maxPerDir int) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	var b strings.Builder
	writeHeader(&b, report, g, maxPerDir)
	for _, unit := range report.Units {
		writeUnit(&b, report, unit)
	}

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func writeHeader(b *strings.Builder, report *extract.Report, g *depgraph.Graph, maxPerDir int) {
	fmt.Fprintf(b, "%s\nEXTRACTED FILES SUMMARY\n%s\n\n", ruleWide, ruleWide)
	fmt.Fprintf(b, "Total Files: %d\n", report.FilesDiscovered)
	fmt.Fprintf(b, "Project Root: %s\n", report.Root)
	if report.ParseFailures > 0 {
		fmt.Fprintf(b, "Parse Failures: %d\n", report.ParseFailures)
	}
	if len(report.Externals) > 0 {
		fmt.Fprintf(b, "External Modules: %s\n", strings.Join(report.Externals, ", "))
	}
	b.WriteString("\n")

	b.WriteString("Directory Tree Structure:\n")
	b.WriteString(Tree(treePaths(report, g), filepath.Base(report.Root), maxPerDir))
	fmt.Fprintf(b, "\n%s\n\n", ruleWide)
}

// treePaths lists root-relative paths for the tree from the import graph's
// vertex set. Tree rendering sorts, so adjacency iteration order is moot.
func treePaths(report *extract.Report, g *depgraph.Graph) []string {
	adjacency, err := g.Edges().AdjacencyMap()
	if err != nil {
		return relPaths(report)
	}
	rels := make([]string, 0, len(adjacency))
	for path := range adjacency {
		rels = append(rels, relTo(report.Root, path))
	}
	return rels
}

func writeUnit(b *strings.Builder, report *extract.Report, unit extract.Unit) {
	rel := relTo(report.Root, unit.Path)
	dir := filepath.Dir(rel)
	if dir == "." {
		dir = "(root)"
	}

	fmt.Fprintf(b, "\n%s\n", ruleNarrow)
	fmt.Fprintf(b, "FILE: %s\n", unit.Path)
	fmt.Fprintf(b, "Relative Path: %s\n", rel)
	fmt.Fprintf(b, "Directory: %s\n", dir)
	fmt.Fprintf(b, "Extracted Lines: %d\n", unit.RetainedLines)
	if unit.ParseFailed {
		fmt.Fprintf(b, "Parse Failure: %s\n", unit.FailReason)
	}
	fmt.Fprintf(b, "%s\n\n", ruleNarrow)
	b.WriteString(unit.Content)
	b.WriteString("\n\n")
}

func relPaths(report *extract.Report) []string {
	rels := make([]string, 0, len(report.Units))
	for _, unit := range report.Units {
		rels = append(rels, relTo(report.Root, unit.Path))
	}
	return rels
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
