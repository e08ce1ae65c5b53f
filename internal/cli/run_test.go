package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkunal8019/extract-code/internal/config"
)

// Test Plan for run:
// - runExtraction produces the artifact end to end from a config
// - The artifact reflects name-filtered extraction
// - A missing entry file fails validation before any extraction

func TestRunExtraction_EndToEnd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"),
		[]byte("from utils import helper\n\nhelper()\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "utils.py"),
		[]byte("VERSION = \"1.0\"\n\ndef helper():\n    return VERSION\n\ndef unused_fn():\n    pass\n"), 0644))

	cfg := config.Default()
	cfg.Project.Root = root
	cfg.Project.Entry = "main.py"
	cfg.Output.Path = filepath.Join(root, "out.txt")
	require.NoError(t, config.Validate(cfg))

	require.NoError(t, runExtraction(cfg))

	content, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "EXTRACTED FILES SUMMARY")
	assert.Contains(t, text, "Total Files: 2")
	assert.Contains(t, text, "def helper():")
	assert.NotContains(t, text, "unused_fn")
}

func TestValidateRejectsMissingEntry(t *testing.T) {
	cfg := config.Default()
	cfg.Project.Root = t.TempDir()
	cfg.Project.Entry = "ghost.py"

	assert.Error(t, config.Validate(cfg))
}
