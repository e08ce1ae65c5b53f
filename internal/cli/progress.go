package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/gkunal8019/extract-code/internal/extract"
)

// ProgressReporter prints discovery diagnostics and an extraction progress
// bar. It implements depgraph.Sink.
type ProgressReporter struct {
	quiet bool
	root  string
	bar   *progressbar.ProgressBar
}

// NewProgressReporter creates a reporter for the given project root. quiet
// suppresses all non-error output.
func NewProgressReporter(root string, quiet bool) *ProgressReporter {
	return &ProgressReporter{quiet: quiet, root: root}
}

func (r *ProgressReporter) rel(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return rel
	}
	return path
}

func (r *ProgressReporter) OnParseError(path, message string) {
	// Parse failures always print; they change what the artifact contains.
	log.Printf("[WARNING] could not parse %s: %s", r.rel(path), message)
}

func (r *ProgressReporter) OnUnresolvedImport(origin, specifier, reason string) {
	if r.quiet {
		return
	}
	log.Printf("[WARNING] unresolved import %q in %s: %s", specifier, r.rel(origin), reason)
}

func (r *ProgressReporter) OnExcluded(path, pattern string) {
	if r.quiet {
		return
	}
	log.Printf("[SKIP] %s (matched %q)", r.rel(path), pattern)
}

func (r *ProgressReporter) OnExternalModule(name string) {}

// DiscoveryStart announces the analysis phase.
func (r *ProgressReporter) DiscoveryStart(entry string) {
	if r.quiet {
		return
	}
	log.Printf("Discovering files reachable from %s...", r.rel(entry))
}

// DiscoveryComplete announces the discovered file count and prepares the
// extraction progress bar.
func (r *ProgressReporter) DiscoveryComplete(fileCount int) {
	if r.quiet {
		return
	}
	log.Printf("Discovered %d files", fileCount)

	r.bar = progressbar.NewOptions(fileCount,
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)
}

// UnitExtracted advances the extraction progress bar. Passed to BuildReport
// as an observer.
func (r *ProgressReporter) UnitExtracted(unit extract.Unit) {
	if r.quiet || r.bar == nil {
		return
	}
	_ = r.bar.Add(1)
}

// Complete prints the closing summary.
func (r *ProgressReporter) Complete(report *extract.Report, outputPath string) {
	if r.quiet {
		return
	}
	fmt.Println()
	log.Printf("Run %s: extracted %d files with %d total lines", report.RunID, report.FilesDiscovered, report.LinesExtracted)
	if report.ParseFailures > 0 {
		log.Printf("%d files had parse failures and were recorded without content", report.ParseFailures)
	}
	log.Printf("Output written to %s", outputPath)
}
