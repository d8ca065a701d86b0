// Package tt is a fixed-size transposition table keyed by position fingerprint.
package tt

import "unsafe"

const clusterSize = 4

type entry[V any] struct {
	hash  uint64
	depth int8
	used  bool
	value V
}

// Table maps fingerprints to values in clusters of four slots. A full
// cluster evicts its shallowest entry.
type Table[V any] struct {
	entries      []entry[V]
	clusterCount uint64
}

// New allocates a table of roughly sizeMB megabytes, never less than one cluster.
func New[V any](sizeMB int) *Table[V] {
	entrySize := uint64(unsafe.Sizeof(entry[V]{}))
	if entrySize == 0 {
		entrySize = 1
	}
	if sizeMB < 0 {
		sizeMB = 0
	}
	clusterCount := uint64(sizeMB) * 1024 * 1024 / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &Table[V]{
		entries:      make([]entry[V], clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

func (t *Table[V]) cluster(hash uint64) []entry[V] {
	base := (hash % t.clusterCount) * clusterSize
	return t.entries[base : base+clusterSize]
}

// Probe returns the value stored for hash and the depth it was stored at.
func (t *Table[V]) Probe(hash uint64) (value V, depth int8, ok bool) {
	c := t.cluster(hash)
	for i := range c {
		if c[i].used && c[i].hash == hash {
			return c[i].value, c[i].depth, true
		}
	}
	return value, 0, false
}

// Store records value for hash. An existing entry for hash is overwritten,
// then an empty slot is taken, then the shallowest entry is replaced.
func (t *Table[V]) Store(hash uint64, depth int8, value V) {
	c := t.cluster(hash)
	target := -1

	for i := range c {
		if c[i].used && c[i].hash == hash {
			target = i
			break
		}
	}

	if target == -1 {
		for i := range c {
			if !c[i].used {
				target = i
				break
			}
		}
	}

	if target == -1 {
		target = 0
		for i := 1; i < len(c); i++ {
			if c[i].depth < c[target].depth {
				target = i
			}
		}
	}

	c[target] = entry[V]{hash: hash, depth: depth, used: true, value: value}
}

// Len reports the number of occupied slots.
func (t *Table[V]) Len() int {
	n := 0
	for i := range t.entries {
		if t.entries[i].used {
			n++
		}
	}
	return n
}

// Cap reports the number of slots.
func (t *Table[V]) Cap() int { return len(t.entries) }

func (t *Table[V]) Clear() {
	clear(t.entries)
}
