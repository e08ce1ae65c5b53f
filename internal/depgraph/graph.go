// Package depgraph discovers the set of project files reachable from an
// entry file through import statements, together with the names each file
// must provide.
package depgraph

import (
	graphlib "github.com/dominikbraun/graph"
)

// Requirement is the set of names a discovered file must provide. Wildcard
// dominates: once set, the whole public surface of the file is required and
// any name list is moot.
type Requirement struct {
	Wildcard bool
	Names    map[string]bool
}

func newRequirement() *Requirement {
	return &Requirement{Names: make(map[string]bool)}
}

// union folds an incoming edge's demands into the requirement.
func (r *Requirement) union(names []string, wildcard bool) {
	if wildcard {
		r.Wildcard = true
	}
	for _, name := range names {
		r.Names[name] = true
	}
}

// Needs reports whether the named definition must be retained.
func (r *Requirement) Needs(name string) bool {
	return r.Wildcard || r.Names[name]
}

// Graph is the finalized result of discovery. It grows only during
// Builder.Discover and is read-only afterwards.
type Graph struct {
	order     []string
	reqs      map[string]*Requirement
	edges     graphlib.Graph[string, string]
	externals []string
}

func newGraph() *Graph {
	return &Graph{
		reqs:  make(map[string]*Requirement),
		edges: graphlib.New(graphlib.StringHash, graphlib.Directed()),
	}
}

// Files returns discovered file paths in discovery order, entry file first.
func (g *Graph) Files() []string {
	return g.order
}

// Requirement returns the required-name set for a discovered file, or nil
// when the path was never discovered.
func (g *Graph) Requirement(path string) *Requirement {
	return g.reqs[path]
}

// Externals returns external module names in first-seen order, deduplicated.
func (g *Graph) Externals() []string {
	return g.externals
}

// Edges exposes the underlying directed import graph, keyed by canonical
// path, for visualization.
func (g *Graph) Edges() graphlib.Graph[string, string] {
	return g.edges
}

func (g *Graph) addFile(path string) *Requirement {
	req := newRequirement()
	g.reqs[path] = req
	g.order = append(g.order, path)
	_ = g.edges.AddVertex(path)
	return req
}

func (g *Graph) addExternal(name string) bool {
	for _, existing := range g.externals {
		if existing == name {
			return false
		}
	}
	g.externals = append(g.externals, name)
	return true
}
