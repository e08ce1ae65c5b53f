package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkunal8019/extract-code/internal/depgraph"
	"github.com/gkunal8019/extract-code/internal/pysrc"
	"github.com/gkunal8019/extract-code/internal/resolve"
)

// Test Plan for BuildReport:
// - Units follow discovery order, entry file first
// - Summary counts cover files, parse failures, and retained lines
// - Parse failures appear with zero retained lines
// - Observers see every unit in order
// - Two runs over an unchanged project yield identical unit content

func buildProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func runExtraction(t *testing.T, root string, observers ...func(Unit)) *Report {
	t.Helper()
	index := pysrc.NewIndex()
	resolver := resolve.New(root, stdlibNames())
	builder := depgraph.NewBuilder(index, resolver, nil, nil)
	graph := builder.Discover(filepath.Join(root, "main.py"))
	return BuildReport(graph, index, root, observers...)
}

func stdlibNames() []string {
	return []string{"json", "os"}
}

func projectFixture() map[string]string {
	return map[string]string{
		"main.py":  "import json\nfrom utils import helper\n\nhelper()\n",
		"utils.py": `VERSION = "1.0"

def helper():
    return VERSION

def unused_fn():
    pass
`,
	}
}

func TestBuildReport_OrderAndCounts(t *testing.T) {
	t.Parallel()

	root := buildProject(t, projectFixture())
	report := runExtraction(t, root)

	require.Len(t, report.Units, 2)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "main.py")), report.Units[0].Path, "entry file comes first")
	assert.Equal(t, 2, report.FilesDiscovered)
	assert.Zero(t, report.ParseFailures)
	assert.Equal(t, []string{"json"}, report.Externals)
	assert.NotEmpty(t, report.RunID)

	utils := report.Units[1]
	assert.Contains(t, utils.Content, "def helper")
	assert.NotContains(t, utils.Content, "unused_fn")

	total := 0
	for _, unit := range report.Units {
		total += unit.RetainedLines
	}
	assert.Equal(t, total, report.LinesExtracted)
}

func TestBuildReport_ParseFailureUnit(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{
		"main.py":   "from broken import thing\n",
		"broken.py": "def broken(:\n    pass\n",
	})
	report := runExtraction(t, root)

	require.Len(t, report.Units, 2)
	assert.Equal(t, 1, report.ParseFailures)

	broken := report.Units[1]
	assert.True(t, broken.ParseFailed)
	assert.Zero(t, broken.RetainedLines)

	// The entry file itself extracts unaffected.
	assert.Contains(t, report.Units[0].Content, "from broken import thing")
}

func TestBuildReport_ObserversSeeEveryUnit(t *testing.T) {
	t.Parallel()

	root := buildProject(t, projectFixture())

	var seen []string
	report := runExtraction(t, root, func(unit Unit) {
		seen = append(seen, unit.Path)
	})

	require.Len(t, seen, len(report.Units))
	for i, unit := range report.Units {
		assert.Equal(t, unit.Path, seen[i])
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	t.Parallel()

	root := buildProject(t, projectFixture())

	first := runExtraction(t, root)
	second := runExtraction(t, root)

	require.Len(t, second.Units, len(first.Units))
	for i := range first.Units {
		assert.Equal(t, first.Units[i], second.Units[i], "unchanged project must extract identically")
	}
	assert.Equal(t, first.LinesExtracted, second.LinesExtracted)
}
