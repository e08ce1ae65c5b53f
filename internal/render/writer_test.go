package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkunal8019/extract-code/internal/depgraph"
	"github.com/gkunal8019/extract-code/internal/extract"
	"github.com/gkunal8019/extract-code/internal/pysrc"
	"github.com/gkunal8019/extract-code/internal/resolve"
)

// Test Plan for WriteArtifact / WriteBundle:
// - Artifact carries summary header, tree, and one block per unit in order
// - Directory tree content comes from the discovered import graph
// - Parse failures surface in both the header count and the file block
// - Root-level files report "(root)" as their directory
// - Bundle output uses Folder Path / File Name blocks with the full source
// - Two writes of the same report and graph are byte-identical

func discoverReport(t *testing.T, externals ...string) (*extract.Report, *depgraph.Graph, string) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.py":      "import json\nfrom pkg.utils import helper\nfrom broken import thing\n\nhelper()\n",
		"pkg/utils.py": "def helper():\n    return 1\n\ndef unused():\n    pass\n",
		"broken.py":    "def broken(:\n    pass\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	index := pysrc.NewIndex()
	resolver := resolve.New(root, externals)
	builder := depgraph.NewBuilder(index, resolver, nil, nil)
	g := builder.Discover(filepath.Join(root, "main.py"))
	return extract.BuildReport(g, index, root), g, root
}

func TestWriteArtifact(t *testing.T) {
	t.Parallel()

	report, g, root := discoverReport(t, "json")
	outputPath := filepath.Join(root, "out.txt")

	require.NoError(t, WriteArtifact(report, g, outputPath, 8))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "EXTRACTED FILES SUMMARY")
	assert.Contains(t, text, "Total Files: 3")
	assert.Contains(t, text, "Parse Failures: 1")
	assert.Contains(t, text, "External Modules: json")

	// Tree entries reflect the discovered graph's files.
	assert.Contains(t, text, "📄 main.py")
	assert.Contains(t, text, "📄 broken.py")
	assert.Contains(t, text, "📁 pkg/")
	assert.Contains(t, text, "📄 utils.py")
	assert.NotContains(t, text, "📄 out.txt")

	assert.Contains(t, text, "Relative Path: main.py")
	assert.Contains(t, text, "Directory: (root)")
	assert.Contains(t, text, "Relative Path: "+filepath.Join("pkg", "utils.py"))
	assert.Contains(t, text, "Parse Failure: syntax error")
	assert.Contains(t, text, "def helper():")
	assert.NotContains(t, text, "def unused():")

	// Units appear in discovery order.
	assert.Less(t,
		indexOf(t, text, "FILE: "+pysrc.Canonical(filepath.Join(root, "main.py"))),
		indexOf(t, text, "FILE: "+pysrc.Canonical(filepath.Join(root, "pkg", "utils.py"))))
}

func TestWriteArtifact_Deterministic(t *testing.T) {
	t.Parallel()

	report, g, root := discoverReport(t)

	first := filepath.Join(root, "a.txt")
	second := filepath.Join(root, "b.txt")
	require.NoError(t, WriteArtifact(report, g, first, 8))
	require.NoError(t, WriteArtifact(report, g, second, 8))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0644))

	outputPath := filepath.Join(dir, "bundle.txt")
	require.NoError(t, WriteBundle([]string{src}, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Folder Path: "+dir)
	assert.Contains(t, text, "File Name: mod.py")
	assert.Contains(t, text, "x = 1")
	assert.Contains(t, text, ruleWide)
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "%q not found", needle)
	return idx
}
