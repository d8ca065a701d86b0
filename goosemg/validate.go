package goosemg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSetup is wrapped by every *SetupError.
var ErrInvalidSetup = errors.New("invalid setup")

// SetupError reports a position that parsed but is not a well-formed chess position.
type SetupError struct {
	FEN      string
	Problems []string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("goosemg: %v %q: %s", ErrInvalidSetup, e.FEN, strings.Join(e.Problems, "; "))
}

func (e *SetupError) Unwrap() error { return ErrInvalidSetup }

// Validate checks the invariants hashing and move application rely on and
// returns one message per failed check.
func (b *Board) Validate() []string {
	var problems []string
	var kings [2]int
	for sq, p := range b.pieces {
		switch p.Type() {
		case PieceTypeKing:
			kings[p.Color()]++
		case PieceTypePawn:
			if r := Square(sq).Rank(); r == 0 || r == 7 {
				problems = append(problems, fmt.Sprintf("pawn on back rank %s", Square(sq)))
			}
		}
	}
	for _, c := range [...]Color{White, Black} {
		if kings[c] != 1 {
			problems = append(problems, fmt.Sprintf("%s has %d kings", c, kings[c]))
		}
	}

	// A castling right needs the king and that rook on their starting squares
	for _, c := range [...]Color{White, Black} {
		for _, side := range [...]CastlingSide{KingSide, QueenSide} {
			if !b.castlingRights.Has(c, side) {
				continue
			}
			if b.pieces[KingHome(c)] != PieceTypeKing.Of(c) || b.pieces[RookHome(c, side)] != PieceTypeRook.Of(c) {
				problems = append(problems, fmt.Sprintf("castling right %c without king and rook at home", charFromPiece(castleChar(c, side))))
			}
		}
	}

	if ep := b.enPassantSquare; ep != NoSquare {
		if msg := b.checkEnPassant(ep); msg != "" {
			problems = append(problems, msg)
		}
	}
	return problems
}

func castleChar(c Color, side CastlingSide) Piece {
	if side == QueenSide {
		return PieceTypeQueen.Of(c)
	}
	return PieceTypeKing.Of(c)
}

// checkEnPassant requires the square to sit behind a pawn of the side that just
// moved, with both the square and the pawn's origin empty.
func (b *Board) checkEnPassant(ep Square) string {
	mover := b.sideToMove.Other()
	rank, dir := 2, 8
	if mover == Black {
		rank, dir = 5, -8
	}
	if ep.Rank() != rank {
		return fmt.Sprintf("en passant square %s on wrong rank", ep)
	}
	pushed := ep + Square(dir)
	origin := ep - Square(dir)
	if b.pieces[pushed] != PieceTypePawn.Of(mover) {
		return fmt.Sprintf("en passant square %s without pushed pawn", ep)
	}
	if b.pieces[ep] != NoPiece || b.pieces[origin] != NoPiece {
		return fmt.Sprintf("en passant square %s is not clear", ep)
	}
	return ""
}
