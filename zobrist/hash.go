// Package zobrist maintains 64-bit fingerprints of chess positions.
//
// A fingerprint XORs one key per piece on a square, per held castling right,
// for the en-passant file when one is set, and for Black to move. Because XOR
// is commutative and self-inverse, Update can keep a fingerprint current by
// toggling only the keys a move changes; Compute folds everything from scratch
// and is the reference Update must always agree with.
package zobrist

import gm "chess-zobrist/goosemg"

// Setup is the read-only view of a position hashing needs.
type Setup interface {
	PieceAt(sq gm.Square) gm.Piece
	SideToMove() gm.Color
	CastlingRights() gm.CastlingRights
	EnPassantSquare() gm.Square
}

// Position is a Setup that can apply a trusted move to itself.
type Position interface {
	Setup
	Play(m gm.Move)
}

var (
	colors = [...]gm.Color{gm.White, gm.Black}
	sides  = [...]gm.CastlingSide{gm.KingSide, gm.QueenSide}
)

// Compute calculates the fingerprint of s from scratch.
func Compute(keys *Keys, s Setup) uint64 {
	key := pieces(keys, s)

	// Castling rights
	rights := s.CastlingRights()
	for _, c := range colors {
		for _, side := range sides {
			if rights.Has(c, side) {
				key ^= keys.Castle(c, side)
			}
		}
	}

	// En passant file (if any)
	if ep := s.EnPassantSquare(); ep != gm.NoSquare {
		key ^= keys.EnPassant(ep.File())
	}

	// Side to move (only XOR if Black to move)
	if s.SideToMove() == gm.Black {
		key ^= keys.Side()
	}
	return key
}

// pieces folds only the board occupancy.
func pieces(keys *Keys, s Setup) uint64 {
	var key uint64
	for sq := gm.Square(0); sq < 64; sq++ {
		if p := s.PieceAt(sq); p != gm.NoPiece {
			key ^= keys.Piece(sq, p)
		}
	}
	return key
}
