// Package dragon generates legal moves for goosemg boards with dragontoothmg
// and converts them into goosemg move descriptions.
package dragon

import (
	"github.com/dylhunn/dragontoothmg"

	gm "chess-zobrist/goosemg"
)

// Board converts b into a dragontoothmg board. Pockets are dropped.
func Board(b *gm.Board) dragontoothmg.Board {
	return dragontoothmg.ParseFen(b.ChessFEN())
}

// LegalMoves returns the legal board moves of the side to move. Drops are not
// generated.
func LegalMoves(b *gm.Board) []gm.Move {
	db := Board(b)
	moves := db.GenerateLegalMoves()
	out := make([]gm.Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, Convert(b, m))
	}
	return out
}

// Convert describes the dragontoothmg move m in the context of b, the
// position it is played from.
func Convert(b *gm.Board, m dragontoothmg.Move) gm.Move {
	from, to := gm.Square(m.From()), gm.Square(m.To())
	moved := b.PieceAt(from)
	target := b.PieceAt(to)

	switch moved.Type() {
	case gm.PieceTypeKing:
		// dragontoothmg castles as a two-file king move
		if d := to.File() - from.File(); from.Rank() == to.Rank() && (d == 2 || d == -2) {
			side := gm.KingSide
			if d < 0 {
				side = gm.QueenSide
			}
			return gm.NewCastle(from, gm.RookHome(moved.Color(), side))
		}
	case gm.PieceTypePawn:
		if from.File() != to.File() && target == gm.NoPiece {
			return gm.NewEnPassant(from, to)
		}
	}
	return gm.NewNormal(moved.Type(), from, to, target.Type(), pieceType(m.Promote()))
}

// pieceType maps a dragontoothmg promotion piece to a goosemg type.
func pieceType(p dragontoothmg.Piece) gm.PieceType {
	switch p {
	case dragontoothmg.Pawn:
		return gm.PieceTypePawn
	case dragontoothmg.Knight:
		return gm.PieceTypeKnight
	case dragontoothmg.Bishop:
		return gm.PieceTypeBishop
	case dragontoothmg.Rook:
		return gm.PieceTypeRook
	case dragontoothmg.Queen:
		return gm.PieceTypeQueen
	case dragontoothmg.King:
		return gm.PieceTypeKing
	default:
		return gm.PieceTypeNone
	}
}

// InCheck reports whether the side to move is in check.
func InCheck(b *gm.Board) bool {
	db := Board(b)
	return db.OurKingInCheck()
}

// IsCheckmate reports whether the side to move is checkmated.
func IsCheckmate(b *gm.Board) bool {
	db := Board(b)
	return db.OurKingInCheck() && len(db.GenerateLegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal move and is not in check.
func IsStalemate(b *gm.Board) bool {
	db := Board(b)
	return !db.OurKingInCheck() && len(db.GenerateLegalMoves()) == 0
}
