package zobrist

import (
	"math/rand"
	"sync"

	"golang.org/x/exp/slices"

	gm "chess-zobrist/goosemg"
)

// DefaultSeed seeds DefaultKeys. Fingerprints stored across runs are only
// comparable while it stays the same.
const DefaultSeed int64 = 0xC0DE

// Keys is the random table fingerprints are folded from. It is immutable after
// NewKeys returns and safe to share between goroutines.
type Keys struct {
	piece     [12][64]uint64 // index by pieceIndex, then square
	castle    [4]uint64      // WK, WQ, BK, BQ
	enPassant [8]uint64      // by file
	side      uint64         // Black to move
}

// NewKeys fills a table from a generator seeded with seed. The same seed
// always yields the same table.
func NewKeys(seed int64) *Keys {
	rnd := rand.New(rand.NewSource(seed))
	k := &Keys{}

	// Piece keys
	for p := range k.piece {
		for sq := range k.piece[p] {
			k.piece[p][sq] = rnd.Uint64()
		}
	}

	// Castling rights keys
	for i := range k.castle {
		k.castle[i] = rnd.Uint64()
	}

	// En passant file keys
	for f := range k.enPassant {
		k.enPassant[f] = rnd.Uint64()
	}

	// Side to move key
	k.side = rnd.Uint64()
	return k
}

var defaultKeys = sync.OnceValue(func() *Keys { return NewKeys(DefaultSeed) })

// DefaultKeys returns the process-wide table built from DefaultSeed.
func DefaultKeys() *Keys { return defaultKeys() }

func pieceIndex(p gm.Piece) int {
	idx := int(p.Type()) - 1
	if p.Color() == gm.Black {
		idx += 6
	}
	return idx
}

// Piece returns the key for p standing on sq. p must not be NoPiece.
func (k *Keys) Piece(sq gm.Square, p gm.Piece) uint64 {
	return k.piece[pieceIndex(p)][int(sq)]
}

// Castle returns the key for color holding the right to castle to side.
func (k *Keys) Castle(color gm.Color, side gm.CastlingSide) uint64 {
	return k.castle[int(color)*2+int(side)]
}

// EnPassant returns the key for an en-passant square on file.
func (k *Keys) EnPassant(file int) uint64 { return k.enPassant[file] }

// Side returns the key folded in when Black is to move.
func (k *Keys) Side() uint64 { return k.side }

// Duplicates returns every value that occurs more than once in the table.
func (k *Keys) Duplicates() []uint64 {
	all := make([]uint64, 0, 12*64+4+8+1)
	for p := range k.piece {
		all = append(all, k.piece[p][:]...)
	}
	all = append(all, k.castle[:]...)
	all = append(all, k.enPassant[:]...)
	all = append(all, k.side)
	slices.Sort(all)

	var dups []uint64
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] && (len(dups) == 0 || dups[len(dups)-1] != all[i]) {
			dups = append(dups, all[i])
		}
	}
	return dups
}
