package params

import (
	"sync"
	"sync/atomic"
)

// Store owns the current parameter set. Writers serialize on a mutex and
// publish a fresh copy; Snapshot is a single atomic load and never blocks.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Parameters]
}

// NewStore returns a store holding the layout defaults.
func NewStore() *Store {
	s := &Store{}
	p := Defaults()
	s.current.Store(&p)

	return s
}

// Snapshot returns a copy of the current parameters.
func (s *Store) Snapshot() Parameters {
	return *s.current.Load()
}

// Get returns the plain value of id.
func (s *Store) Get(id ID) (float64, error) {
	return s.Snapshot().Get(id)
}

// Normalized returns the value of id mapped into [0, 1].
func (s *Store) Normalized(id ID) (float64, error) {
	spec, ok := Lookup(id)
	if !ok {
		return 0, errUnknown(id)
	}

	v, err := s.Get(id)
	if err != nil {
		return 0, err
	}

	return spec.Range.ToNormalized(v), nil
}

// Set stores a plain value for id.
func (s *Store) Set(id ID, v float64) error {
	return s.Update(func(p *Parameters) error {
		return p.Set(id, v)
	})
}

// SetNormalized stores a host-normalized value in [0, 1] for id.
func (s *Store) SetNormalized(id ID, n float64) error {
	spec, ok := Lookup(id)
	if !ok {
		return errUnknown(id)
	}

	return s.Set(id, spec.Range.FromNormalized(n))
}

// Replace publishes p, clamped to the layout ranges.
func (s *Store) Replace(p Parameters) {
	_ = s.Update(func(cur *Parameters) error {
		*cur = p.Clamped()
		return nil
	})
}

// Update applies fn to a private copy and publishes it if fn succeeds.
func (s *Store) Update(fn func(*Parameters) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current.Load()
	if err := fn(&next); err != nil {
		return err
	}

	s.current.Store(&next)

	return nil
}

// State returns the plain value of every parameter keyed by ID.
func (s *Store) State() map[string]float64 {
	p := s.Snapshot()
	out := make(map[string]float64, len(layout))
	for _, spec := range layout {
		v, _ := p.Get(spec.ID)
		out[string(spec.ID)] = v
	}

	return out
}

// Restore replaces the parameter set from a state map. Unknown keys are
// ignored and missing keys take their default value.
func (s *Store) Restore(state map[string]float64) {
	p := Defaults()
	for _, spec := range layout {
		if v, ok := state[string(spec.ID)]; ok {
			_ = p.Set(spec.ID, v)
		}
	}

	_ = s.Update(func(cur *Parameters) error {
		*cur = p
		return nil
	})
}
