package extract

import (
	"github.com/google/uuid"

	"github.com/gkunal8019/extract-code/internal/depgraph"
	"github.com/gkunal8019/extract-code/internal/pysrc"
)

// Report is the finished extraction result: one Unit per discovered file in
// discovery order (entry file first), plus summary counts. Read-only once
// built; handed off whole to the output writer.
type Report struct {
	RunID           string
	Root            string
	Units           []Unit
	FilesDiscovered int
	ParseFailures   int
	LinesExtracted  int
	Externals       []string
}

// BuildReport runs extraction once per discovered file and aggregates the
// results. The graph must be finalized; the index already holds every
// discovered file parsed, so no filesystem reads happen here beyond cache
// hits. Observers see each finished unit, in order, for progress reporting.
func BuildReport(g *depgraph.Graph, ix *pysrc.Index, root string, observers ...func(Unit)) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		Root:      pysrc.Canonical(root),
		Externals: g.Externals(),
	}

	for _, path := range g.Files() {
		sf := ix.Parse(path)
		unit := Extract(sf, g.Requirement(path))
		report.Units = append(report.Units, unit)

		report.FilesDiscovered++
		report.LinesExtracted += unit.RetainedLines
		if unit.ParseFailed {
			report.ParseFailures++
		}

		for _, observe := range observers {
			observe(unit)
		}
	}

	return report
}
