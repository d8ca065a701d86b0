// Package perft counts move-tree leaves while checking the incremental
// fingerprint against a full recompute at every node.
package perft

import (
	"fmt"

	"chess-zobrist/dragon"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/tt"
	"chess-zobrist/zobrist"
)

// Mismatch records a move after which Update and Compute disagreed.
type Mismatch struct {
	FEN         string
	Move        gm.Move
	Incremental uint64
	Full        uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s after %s: incremental %016x, full %016x", m.FEN, m.Move, m.Incremental, m.Full)
}

// Counter walks legal move trees. With a cache, subtree counts are reused by
// fingerprint and depth, so equal fingerprints must mean equal subtrees.
type Counter struct {
	keys       *zobrist.Keys
	cache      *tt.Table[uint64]
	Hits       uint64
	Mismatches []Mismatch
}

// New returns a Counter. cache may be nil.
func New(keys *zobrist.Keys, cache *tt.Table[uint64]) *Counter {
	return &Counter{keys: keys, cache: cache}
}

// Count returns the number of leaf nodes depth plies below b.
func (c *Counter) Count(b *gm.Board, depth int) uint64 {
	return c.count(b, zobrist.Compute(c.keys, b), depth)
}

// Divide returns the leaf count below each legal root move.
func (c *Counter) Divide(b *gm.Board, depth int) map[gm.Move]uint64 {
	out := make(map[gm.Move]uint64)
	if depth <= 0 {
		return out
	}
	hash := zobrist.Compute(c.keys, b)
	for _, m := range dragon.LegalMoves(b) {
		child, childHash := c.play(b, hash, m)
		out[m] = c.count(child, childHash, depth-1)
	}
	return out
}

func (c *Counter) play(b *gm.Board, hash uint64, m gm.Move) (*gm.Board, uint64) {
	next := zobrist.Update(c.keys, hash, b, m)
	child := b.Clone()
	child.Play(m)
	if full := zobrist.Compute(c.keys, child); full != next {
		c.Mismatches = append(c.Mismatches, Mismatch{FEN: b.ToFEN(), Move: m, Incremental: next, Full: full})
		next = full
	}
	return child, next
}

func (c *Counter) count(b *gm.Board, hash uint64, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if c.cache != nil {
		if n, d, ok := c.cache.Probe(hash); ok && int(d) == depth {
			c.Hits++
			return n
		}
	}
	var nodes uint64
	for _, m := range dragon.LegalMoves(b) {
		child, childHash := c.play(b, hash, m)
		nodes += c.count(child, childHash, depth-1)
	}
	if c.cache != nil {
		c.cache.Store(hash, int8(depth), nodes)
	}
	return nodes
}
