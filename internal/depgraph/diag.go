package depgraph

// Sink receives structured diagnostic events emitted during discovery.
// Implementations must not block; the builder calls them inline.
type Sink interface {
	// OnParseError fires when a reached file cannot be read or parsed.
	OnParseError(path, message string)

	// OnUnresolvedImport fires when a specifier maps to no project-local
	// file and is not a known external module. The edge is dropped.
	OnUnresolvedImport(origin, specifier, reason string)

	// OnExcluded fires when a resolved local file matches an exclude
	// pattern and is pruned from traversal.
	OnExcluded(path, pattern string)

	// OnExternalModule fires when a specifier resolves to a known external
	// module. Externals are recorded but never traversed.
	OnExternalModule(name string)
}

// NoOpSink discards all diagnostic events.
type NoOpSink struct{}

func (NoOpSink) OnParseError(path, message string)                   {}
func (NoOpSink) OnUnresolvedImport(origin, specifier, reason string) {}
func (NoOpSink) OnExcluded(path, pattern string)                     {}
func (NoOpSink) OnExternalModule(name string)                        {}

// RecorderSink accumulates diagnostic events in order. Not safe for
// concurrent use; Discover runs single-threaded so none is needed.
type RecorderSink struct {
	ParseErrors []string
	Unresolved  []string
	Excluded    []string
	Externals   []string
}

func (r *RecorderSink) OnParseError(path, message string) {
	r.ParseErrors = append(r.ParseErrors, path)
}

func (r *RecorderSink) OnUnresolvedImport(origin, specifier, reason string) {
	r.Unresolved = append(r.Unresolved, specifier)
}

func (r *RecorderSink) OnExcluded(path, pattern string) {
	r.Excluded = append(r.Excluded, path)
}

func (r *RecorderSink) OnExternalModule(name string) {
	r.Externals = append(r.Externals, name)
}
