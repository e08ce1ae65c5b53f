// Package resolve maps Python import specifiers to project-local files or
// classifies them as external modules.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gkunal8019/extract-code/internal/pysrc"
)

// TargetKind classifies the outcome of resolving one import reference.
type TargetKind string

const (
	TargetLocal      TargetKind = "local"
	TargetExternal   TargetKind = "external"
	TargetUnresolved TargetKind = "unresolved"
)

// Target is the result of resolving an import reference. It is consumed
// immediately by the graph builder and never persisted.
type Target struct {
	Kind   TargetKind
	Path   string // canonical file path when Kind == TargetLocal
	Module string // module name when Kind == TargetExternal
	Reason string // diagnostic when Kind == TargetUnresolved
}

// Resolver resolves import specifiers against one project root. Resolution is
// pure apart from filesystem existence probes.
type Resolver struct {
	root      string
	externals map[string]bool
}

// New creates a resolver for the given project root. externals lists module
// names (matched against the first dotted segment) that are known
// standard-library or installed third-party modules and therefore never
// traversed.
func New(root string, externals []string) *Resolver {
	ext := make(map[string]bool, len(externals))
	for _, name := range externals {
		ext[name] = true
	}
	return &Resolver{
		root:      pysrc.Canonical(root),
		externals: ext,
	}
}

// Resolve maps one import reference from the file at originPath to a target.
// Plain-module candidates win over package __init__ candidates when both
// exist, keeping resolution deterministic.
func (r *Resolver) Resolve(ref pysrc.ImportReference, originPath string) Target {
	if ref.Dots > 0 {
		return r.resolveRelative(ref, originPath)
	}

	asPath := strings.ReplaceAll(ref.Module, ".", string(filepath.Separator))

	for _, candidate := range []string{
		filepath.Join(r.root, asPath+".py"),
		filepath.Join(r.root, asPath, "__init__.py"),
	} {
		if path, ok := r.localFile(candidate); ok {
			return Target{Kind: TargetLocal, Path: path}
		}
	}

	if first := firstSegment(ref.Module); r.externals[first] {
		return Target{Kind: TargetExternal, Module: first}
	}

	return Target{
		Kind:   TargetUnresolved,
		Reason: fmt.Sprintf("no file for module %q under project root", ref.Module),
	}
}

// resolveRelative resolves "from .m import x" style references against the
// origin file's directory: one dot is the containing package, each further
// dot climbs one level.
func (r *Resolver) resolveRelative(ref pysrc.ImportReference, originPath string) Target {
	base := filepath.Dir(pysrc.Canonical(originPath))
	for i := 1; i < ref.Dots; i++ {
		base = filepath.Dir(base)
	}

	var candidates []string
	if ref.Module == "" {
		// "from . import x" targets the package itself.
		candidates = []string{filepath.Join(base, "__init__.py")}
	} else {
		asPath := strings.ReplaceAll(ref.Module, ".", string(filepath.Separator))
		candidates = []string{
			filepath.Join(base, asPath+".py"),
			filepath.Join(base, asPath, "__init__.py"),
		}
	}

	for _, candidate := range candidates {
		if path, ok := r.localFile(candidate); ok {
			return Target{Kind: TargetLocal, Path: path}
		}
	}

	return Target{
		Kind:   TargetUnresolved,
		Reason: fmt.Sprintf("relative import %s%q does not resolve near %s", strings.Repeat(".", ref.Dots), ref.Module, originPath),
	}
}

// localFile reports whether candidate exists as a regular file whose
// canonical path lies inside the project root.
func (r *Resolver) localFile(candidate string) (string, bool) {
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}

	canonical := pysrc.Canonical(candidate)
	if canonical != r.root && !strings.HasPrefix(canonical, r.root+string(filepath.Separator)) {
		return "", false
	}
	return canonical, true
}

func firstSegment(module string) string {
	if idx := strings.IndexByte(module, '.'); idx >= 0 {
		return module[:idx]
	}
	return module
}
