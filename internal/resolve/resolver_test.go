package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkunal8019/extract-code/internal/pysrc"
)

// Test Plan for Resolver:
// - Resolve dotted modules to root-level .py files
// - Resolve package imports to __init__.py
// - Prefer plain module files over package __init__ when both exist
// - Resolve relative imports against the origin file's directory
// - Climb one directory per extra relative dot
// - Classify known external modules by first dotted segment
// - Report unresolved specifiers with a reason
// - Reject candidates outside the project root

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

func TestResolve_ModuleFile(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{
		"main.py":  "",
		"utils.py": "",
	})
	r := New(root, nil)

	target := r.Resolve(pysrc.ImportReference{Module: "utils"}, filepath.Join(root, "main.py"))

	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "utils.py")), target.Path)
}

func TestResolve_PackageInit(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{
		"main.py":             "",
		"pkg/__init__.py":     "",
		"pkg/mod.py":          "",
		"pkg/sub/__init__.py": "",
	})
	r := New(root, nil)
	origin := filepath.Join(root, "main.py")

	target := r.Resolve(pysrc.ImportReference{Module: "pkg"}, origin)
	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "pkg", "__init__.py")), target.Path)

	target = r.Resolve(pysrc.ImportReference{Module: "pkg.mod"}, origin)
	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "pkg", "mod.py")), target.Path)

	target = r.Resolve(pysrc.ImportReference{Module: "pkg.sub"}, origin)
	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "pkg", "sub", "__init__.py")), target.Path)
}

func TestResolve_ModuleFileBeatsPackage(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{
		"main.py":           "",
		"utils.py":          "",
		"utils/__init__.py": "",
	})
	r := New(root, nil)

	target := r.Resolve(pysrc.ImportReference{Module: "utils"}, filepath.Join(root, "main.py"))

	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "utils.py")), target.Path)
}

func TestResolve_Relative(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg/mod.py":      "",
		"pkg/helper.py":   "",
		"shared.py":       "",
	})
	r := New(root, nil)
	origin := filepath.Join(root, "pkg", "mod.py")

	// from .helper import x
	target := r.Resolve(pysrc.ImportReference{Module: "helper", Dots: 1}, origin)
	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "pkg", "helper.py")), target.Path)

	// from . import x
	target = r.Resolve(pysrc.ImportReference{Module: "", Dots: 1}, origin)
	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "pkg", "__init__.py")), target.Path)

	// from ..shared import x
	target = r.Resolve(pysrc.ImportReference{Module: "shared", Dots: 2}, origin)
	require.Equal(t, TargetLocal, target.Kind)
	assert.Equal(t, pysrc.Canonical(filepath.Join(root, "shared.py")), target.Path)
}

func TestResolve_External(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{"main.py": ""})
	r := New(root, []string{"os", "numpy"})
	origin := filepath.Join(root, "main.py")

	target := r.Resolve(pysrc.ImportReference{Module: "os"}, origin)
	require.Equal(t, TargetExternal, target.Kind)
	assert.Equal(t, "os", target.Module)

	// First dotted segment decides.
	target = r.Resolve(pysrc.ImportReference{Module: "os.path"}, origin)
	require.Equal(t, TargetExternal, target.Kind)
	assert.Equal(t, "os", target.Module)
}

func TestResolve_LocalBeatsExternal(t *testing.T) {
	t.Parallel()

	// A project-local json.py shadows the stdlib name, same as Python's own
	// path resolution would.
	root := buildProject(t, map[string]string{
		"main.py": "",
		"json.py": "",
	})
	r := New(root, []string{"json"})

	target := r.Resolve(pysrc.ImportReference{Module: "json"}, filepath.Join(root, "main.py"))

	assert.Equal(t, TargetLocal, target.Kind)
}

func TestResolve_Unresolved(t *testing.T) {
	t.Parallel()

	root := buildProject(t, map[string]string{"main.py": ""})
	r := New(root, []string{"os"})

	target := r.Resolve(pysrc.ImportReference{Module: "nowhere"}, filepath.Join(root, "main.py"))

	require.Equal(t, TargetUnresolved, target.Kind)
	assert.Contains(t, target.Reason, "nowhere")
}

func TestResolve_RelativeEscapingRootRejected(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "outside.py"), nil, 0644))
	root := filepath.Join(parent, "project")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.py"), nil, 0644))

	r := New(root, nil)

	// from ..outside import x climbs out of the project root.
	target := r.Resolve(pysrc.ImportReference{Module: "outside", Dots: 2}, filepath.Join(root, "main.py"))

	assert.Equal(t, TargetUnresolved, target.Kind)
}
