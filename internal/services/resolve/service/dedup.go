package service

import "sync"

// Dedup is the per-run record of already-resolved identity keys. It is an
// explicit context object, created fresh for each batch run, never shared
// across runs. Safe for concurrent workers
type Dedup struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDedup returns an empty dedup context
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// Resolved reports whether key was already recorded in this run
func (d *Dedup) Resolved(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[key]
	return ok
}

// MarkResolved records key. Returns false when another worker got there
// first, in which case the caller must drop its result rather than
// double-count the identity
func (d *Dedup) MarkResolved(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}
