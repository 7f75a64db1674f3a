package catalog

import "sync/atomic"

// Store holds the current catalog snapshot. Swaps are atomic; readers in
// the middle of a pricing pass keep the snapshot they started with.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store seeded with the given snapshot, or the
// built-in defaults when nil.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	if snap == nil {
		snap = Defaults()
	}
	s.current.Store(snap)
	return s
}

// Current returns the live snapshot. Never nil.
func (s *Store) Current() *Snapshot {
	if s == nil {
		return Defaults()
	}
	return s.current.Load()
}

// Replace swaps in a new snapshot. Nil snapshots are ignored.
func (s *Store) Replace(snap *Snapshot) {
	if s == nil || snap == nil {
		return
	}
	s.current.Store(snap)
}
