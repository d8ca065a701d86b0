package zobrist

import gm "chess-zobrist/goosemg"

// Update returns the fingerprint after m is played, given hash, the
// fingerprint of pre. pre must still describe the position before m; call
// Update exactly once per move and before the board is mutated.
//
// Nothing is validated. A wrong pre-move state or a second application
// silently desynchronises the result from Compute.
func Update(keys *Keys, hash uint64, pre Setup, m gm.Move) uint64 {
	us := pre.SideToMove()

	// Any existing en passant opportunity expires after one ply
	if ep := pre.EnPassantSquare(); ep != gm.NoSquare {
		hash ^= keys.EnPassant(ep.File())
	}

	switch m.Kind() {
	case gm.MoveNormal:
		hash = updateNormal(keys, hash, pre, us, m)

	case gm.MoveCastle:
		king, rook := m.King(), m.Rook()
		side := m.CastlingSide()
		rank := king.Rank()
		k, r := gm.PieceTypeKing.Of(us), gm.PieceTypeRook.Of(us)
		hash ^= keys.Piece(king, k)
		hash ^= keys.Piece(rook, r)
		hash ^= keys.Piece(gm.NewSquare(side.KingToFile(), rank), k)
		hash ^= keys.Piece(gm.NewSquare(side.RookToFile(), rank), r)
		hash ^= lostRight(keys, pre.CastlingRights(), us, gm.KingSide)
		hash ^= lostRight(keys, pre.CastlingRights(), us, gm.QueenSide)

	case gm.MoveEnPassant:
		from, to := m.From(), m.To()
		pawn := gm.PieceTypePawn.Of(us)
		hash ^= keys.Piece(gm.NewSquare(to.File(), from.Rank()), gm.PieceTypePawn.Of(us.Other()))
		hash ^= keys.Piece(from, pawn)
		hash ^= keys.Piece(to, pawn)

	case gm.MovePut:
		hash ^= keys.Piece(m.To(), m.Role().Of(us))
	}

	// flip the side
	return hash ^ keys.Side()
}

func updateNormal(keys *Keys, hash uint64, pre Setup, us gm.Color, m gm.Move) uint64 {
	from, to := m.From(), m.To()
	rights := pre.CastlingRights()

	switch m.Role() {
	case gm.PieceTypeKing:
		hash ^= lostRight(keys, rights, us, gm.KingSide)
		hash ^= lostRight(keys, rights, us, gm.QueenSide)
	case gm.PieceTypeRook:
		if side, ok := gm.RookHomeSide(us, from); ok {
			hash ^= lostRight(keys, rights, us, side)
		}
	}

	// A rook taken on its corner costs the opponent that right, whoever captures it
	if m.Capture() == gm.PieceTypeRook {
		if side, ok := gm.RookHomeSide(us.Other(), to); ok {
			hash ^= lostRight(keys, rights, us.Other(), side)
		}
	}

	hash ^= keys.Piece(from, pre.PieceAt(from))
	if captured := pre.PieceAt(to); captured != gm.NoPiece {
		hash ^= keys.Piece(to, captured)
	}
	placed := m.Role().Of(us)
	if promo := m.Promotion(); promo != gm.PieceTypeNone {
		placed = promo.Of(us)
	}
	hash ^= keys.Piece(to, placed)

	// A two-step pawn advance opens a new en passant square on its file
	if m.Role() == gm.PieceTypePawn && abs(to.Rank()-from.Rank()) == 2 {
		hash ^= keys.EnPassant(from.File())
	}
	return hash
}

// lostRight returns the key to toggle out if color still holds the right for side.
func lostRight(keys *Keys, rights gm.CastlingRights, color gm.Color, side gm.CastlingSide) uint64 {
	if rights.Has(color, side) {
		return keys.Castle(color, side)
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
