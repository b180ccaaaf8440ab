// Package registry holds the in-memory packet catalog.
//
// A Registry is created empty, loaded exactly once from a source document
// and read concurrently afterwards. Each direction is an independent
// insertion-ordered id -> name mapping.
package registry

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/bft-labs/i2p/internal/domain"
)

// Registry is the process-wide packet catalog.
type Registry struct {
	// mu guards both mappings and loaded. Every read takes it, including
	// after load, so an early reader never sees a partial insert.
	mu          sync.RWMutex
	serverBound *orderedmap.OrderedMap[string, string]
	clientBound *orderedmap.OrderedMap[string, string]
	loaded      bool
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		serverBound: orderedmap.New[string, string](),
		clientBound: orderedmap.New[string, string](),
	}
}

// Load populates both mappings from doc in a single critical section.
//
// A repeated id within one direction overwrites the earlier name and moves
// the entry to the position of the later occurrence. Load may succeed only
// once; later calls return domain.ErrAlreadyLoaded and change nothing.
func (r *Registry) Load(doc domain.SourceDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return domain.ErrAlreadyLoaded
	}

	insert(r.clientBound, doc.ClientBound)
	insert(r.serverBound, doc.ServerBound)
	r.loaded = true
	return nil
}

func insert(m *orderedmap.OrderedMap[string, string], packets []domain.Packet) {
	for _, p := range packets {
		if _, present := m.Set(p.ID, p.Name); present {
			// Key is known to exist, MoveToBack cannot fail.
			_ = m.MoveToBack(p.ID)
		}
	}
}

// Get returns the name registered for id in dir.
func (r *Registry) Get(dir domain.Direction, id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.mapping(dir)
	if m == nil {
		return "", false
	}
	return m.Get(id)
}

// Entries returns a copy of the entries of dir in insertion order.
func (r *Registry) Entries(dir domain.Direction) []domain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.mapping(dir)
	if m == nil {
		return []domain.Entry{}
	}
	entries := make([]domain.Entry, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, domain.Entry{ID: pair.Key, Name: pair.Value})
	}
	return entries
}

// Len returns the number of entries registered for dir.
func (r *Registry) Len(dir domain.Direction) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.mapping(dir)
	if m == nil {
		return 0
	}
	return m.Len()
}

// Loaded reports whether Load has completed.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// mapping must be called with mu held.
func (r *Registry) mapping(dir domain.Direction) *orderedmap.OrderedMap[string, string] {
	switch dir {
	case domain.ServerBound:
		return r.serverBound
	case domain.ClientBound:
		return r.clientBound
	default:
		return nil
	}
}
