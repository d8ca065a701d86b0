package goosemg

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Play applies a move to the board. The move is trusted: it is not checked for
// legality and playing an impossible move leaves the board in an undefined state.
func (b *Board) Play(m Move) {
	us := b.sideToMove
	them := us.Other()
	resetClock := false

	// Any previous en passant opportunity expires after one ply
	b.enPassantSquare = NoSquare

	switch m.Kind() {
	case MoveNormal:
		from, to := m.From(), m.To()
		moved := b.pieces[int(from)]
		captured := b.pieces[int(to)]
		if captured != NoPiece {
			b.pocketCapture(us, to, captured)
			resetClock = true
		}

		placed := moved
		wasPromoted := b.promoted&bb(from) != 0
		b.pieces[int(from)] = NoPiece
		b.promoted &^= bb(from) | bb(to)
		if promo := m.Promotion(); promo != PieceTypeNone {
			placed = promo.Of(us)
			wasPromoted = true
		}
		b.pieces[int(to)] = placed
		if wasPromoted && b.drops {
			b.promoted |= bb(to)
		}

		b.updateCastlingRights(us, moved, from, captured, to)

		if moved.Type() == PieceTypePawn {
			resetClock = true
			if abs(to.Rank()-from.Rank()) == 2 {
				b.enPassantSquare = Square((int(from) + int(to)) / 2)
			}
		}

	case MoveCastle:
		king, rook := m.King(), m.Rook()
		side := m.CastlingSide()
		rank := king.Rank()
		b.pieces[int(king)] = NoPiece
		b.pieces[int(rook)] = NoPiece
		b.pieces[int(NewSquare(side.KingToFile(), rank))] = PieceTypeKing.Of(us)
		b.pieces[int(NewSquare(side.RookToFile(), rank))] = PieceTypeRook.Of(us)
		b.castlingRights &^= CastlingRight(us, KingSide) | CastlingRight(us, QueenSide)

	case MoveEnPassant:
		from, to := m.From(), m.To()
		capSq := NewSquare(to.File(), from.Rank())
		b.pocketCapture(us, capSq, b.pieces[int(capSq)])
		b.pieces[int(capSq)] = NoPiece
		b.pieces[int(from)] = NoPiece
		b.pieces[int(to)] = PieceTypePawn.Of(us)
		resetClock = true

	case MovePut:
		role := m.Role()
		b.pieces[int(m.To())] = role.Of(us)
		if b.pockets[us][role] > 0 {
			b.pockets[us][role]--
		}
		if role == PieceTypePawn {
			resetClock = true
		}
	}

	// Halfmove clock
	if resetClock {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	// Fullmove number increments after a Black move
	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = them
}

// updateCastlingRights drops the rights a normal move gives up: the king moving,
// a rook leaving its corner, or a rook being captured on its corner.
func (b *Board) updateCastlingRights(us Color, moved Piece, from Square, captured Piece, to Square) {
	newCR := b.castlingRights
	switch moved.Type() {
	case PieceTypeKing:
		newCR &^= CastlingRight(us, KingSide) | CastlingRight(us, QueenSide)
	case PieceTypeRook:
		if side, ok := RookHomeSide(us, from); ok {
			newCR &^= CastlingRight(us, side)
		}
	}
	// A rook captured on its home corner costs the owner that right
	if captured.Type() == PieceTypeRook {
		if side, ok := RookHomeSide(us.Other(), to); ok {
			newCR &^= CastlingRight(us.Other(), side)
		}
	}
	b.castlingRights = newCR
}

// pocketCapture moves a captured piece into the capturer's hand when drops are enabled.
// Promoted pieces go back to the pocket as pawns.
func (b *Board) pocketCapture(us Color, sq Square, captured Piece) {
	if !b.drops || captured == NoPiece {
		return
	}
	pt := captured.Type()
	if b.promoted&bb(sq) != 0 {
		pt = PieceTypePawn
		b.promoted &^= bb(sq)
	}
	b.pockets[us][pt]++
}
