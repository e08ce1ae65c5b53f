package depgraph

import (
	"strings"

	"github.com/gkunal8019/extract-code/internal/pysrc"
	"github.com/gkunal8019/extract-code/internal/resolve"
)

// Builder drives reachability discovery from an entry file. Traversal is a
// breadth-first worklist, not recursion, so import cycles terminate: each
// file's own imports are scanned at most once, while name requirements keep
// accumulating from later edges.
type Builder struct {
	index    *pysrc.Index
	resolver *resolve.Resolver
	excludes []string
	sink     Sink
}

// NewBuilder wires a builder for one extraction run. excludes are substrings
// matched against canonical paths; a nil sink discards diagnostics.
func NewBuilder(index *pysrc.Index, resolver *resolve.Resolver, excludes []string, sink Sink) *Builder {
	if sink == nil {
		sink = NoOpSink{}
	}
	return &Builder{
		index:    index,
		resolver: resolver,
		excludes: excludes,
		sink:     sink,
	}
}

type workItem struct {
	path     string
	names    []string
	wildcard bool
}

// Discover walks import edges from entryPath and returns the finalized
// dependency graph. The entry file always enters with wildcard set: the
// whole entry file is needed. Per-file failures degrade to diagnostics; the
// walk itself always completes.
func (b *Builder) Discover(entryPath string) *Graph {
	g := newGraph()

	entry := pysrc.Canonical(entryPath)
	if pattern, excluded := b.excluded(entry); excluded {
		b.sink.OnExcluded(entry, pattern)
		return g
	}

	queue := []workItem{{path: entry, wildcard: true}}
	expanded := make(map[string]bool)

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		req := g.reqs[item.path]
		if req == nil {
			req = g.addFile(item.path)
		}
		req.union(item.names, item.wildcard)

		if expanded[item.path] {
			continue
		}
		expanded[item.path] = true

		sf := b.index.Parse(item.path)
		if sf.Failed() {
			// A file that cannot be parsed cannot reveal its own imports.
			b.sink.OnParseError(item.path, sf.ParseErr)
			continue
		}

		for _, ref := range sf.Imports {
			target := b.resolver.Resolve(ref, item.path)
			switch target.Kind {
			case resolve.TargetExternal:
				if g.addExternal(target.Module) {
					b.sink.OnExternalModule(target.Module)
				}

			case resolve.TargetUnresolved:
				b.sink.OnUnresolvedImport(item.path, specifier(ref), target.Reason)

			case resolve.TargetLocal:
				if pattern, excluded := b.excluded(target.Path); excluded {
					b.sink.OnExcluded(target.Path, pattern)
					continue
				}
				_ = g.edges.AddVertex(target.Path)
				_ = g.edges.AddEdge(item.path, target.Path)
				queue = append(queue, workItem{
					path:     target.Path,
					names:    ref.Names,
					wildcard: ref.Wildcard,
				})
			}
		}
	}

	return g
}

// excluded tests a canonical path against the exclude patterns and returns
// the first matching pattern.
func (b *Builder) excluded(path string) (string, bool) {
	for _, pattern := range b.excludes {
		if pattern != "" && strings.Contains(path, pattern) {
			return pattern, true
		}
	}
	return "", false
}

func specifier(ref pysrc.ImportReference) string {
	return strings.Repeat(".", ref.Dots) + ref.Module
}
