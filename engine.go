package jscn

import (
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/jscompile/jscn/lower"
)

// engine memoizes Schema.JSONSchema lowerings behind a lock-free
// concurrent map, keyed by each Schema's process-lifetime id (see
// schema.go). Schemas are immutable, so a cached result never goes
// stale; this gives repeated and concurrent lowerings of the same
// Schema value the O(1), non-interacting behavior the concurrency model
// requires without a mutex.
type engine struct {
	cache *xsync.MapOf[uint64, cacheEntry]
}

// cacheEntry stores both the success and failure outcome of a lowering,
// so that repeated calls on a Schema whose root fails to lower (an
// unresolved reference, say) stay pure and return the same error
// instead of re-running the lowering walk every time.
type cacheEntry struct {
	frag *lower.Fragment
	err  error
}

func newEngine() *engine {
	return &engine{cache: xsync.NewMapOf[uint64, cacheEntry]()}
}

func (e *engine) lower(s *Schema) (*lower.Fragment, error) {
	if entry, ok := e.cache.Load(s.id); ok {
		return entry.frag, entry.err
	}
	frag, err := lower.Lower(s.toAST())
	entry := cacheEntry{frag: frag, err: err}
	e.cache.Store(s.id, entry)
	return entry.frag, entry.err
}

var defaultEngine = newEngine()
