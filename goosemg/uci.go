package goosemg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is wrapped by every ParseMove error.
var ErrInvalidMove = errors.New("invalid move")

// ParseMove converts UCI text (e2e4, e7e8q, e1g1) or drop text (N@f3) into a
// Move in the context of b. Castles are recognised from the king moving two
// files or onto its own rook, en passant from a pawn moving diagonally onto the
// en-passant square. Legality is not checked.
func ParseMove(b *Board, movestr string) (Move, error) {
	movestr = strings.TrimSpace(movestr)
	bad := func(reason string) (Move, error) {
		return 0, fmt.Errorf("%w %q: %s", ErrInvalidMove, movestr, reason)
	}
	us := b.sideToMove

	if len(movestr) == 4 && movestr[1] == '@' {
		role := pieceFromChar(rune(movestr[0])).Type()
		if role == PieceTypeNone || role == PieceTypeKing {
			return bad("invalid drop piece")
		}
		to, err := ParseSquare(movestr[2:4])
		if err != nil {
			return bad(err.Error())
		}
		if b.Pocket(us, role) == 0 {
			return bad("piece not in hand")
		}
		if b.PieceAt(to) != NoPiece {
			return bad("drop onto occupied square")
		}
		return NewPut(role, to), nil
	}

	movestr = strings.ToLower(movestr)
	if movestr == "0000" {
		return bad("null moves are not supported")
	}
	if len(movestr) < 4 || len(movestr) > 5 {
		return bad("invalid move length")
	}
	from, err := ParseSquare(movestr[0:2])
	if err != nil {
		return bad(err.Error())
	}
	to, err := ParseSquare(movestr[2:4])
	if err != nil {
		return bad(err.Error())
	}
	promo := PieceTypeNone
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = PieceTypeQueen
		case 'r':
			promo = PieceTypeRook
		case 'b':
			promo = PieceTypeBishop
		case 'n':
			promo = PieceTypeKnight
		default:
			return bad("invalid promotion piece")
		}
	}

	moved := b.PieceAt(from)
	if moved == NoPiece || moved.Color() != us {
		return bad("no piece of the side to move on origin square")
	}
	target := b.PieceAt(to)

	if moved.Type() == PieceTypeKing && from.Rank() == to.Rank() {
		if target == PieceTypeRook.Of(us) {
			return NewCastle(from, to), nil
		}
		if abs(to.File()-from.File()) == 2 {
			side := KingSide
			if to.File() < from.File() {
				side = QueenSide
			}
			return NewCastle(from, RookHome(us, side)), nil
		}
	}
	if target != NoPiece && target.Color() == us {
		return bad("destination holds own piece")
	}
	if moved.Type() == PieceTypePawn && from.File() != to.File() && target == NoPiece {
		if to != b.enPassantSquare {
			return bad("diagonal pawn move onto empty square")
		}
		return NewEnPassant(from, to), nil
	}
	return NewNormal(moved.Type(), from, to, target.Type(), promo), nil
}
