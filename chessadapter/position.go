// Package chessadapter exposes github.com/corentings/chess positions through
// the query and move interface zobrist.Hashed consumes.
package chessadapter

import (
	"fmt"

	chess "github.com/corentings/chess/v2"

	gm "chess-zobrist/goosemg"
)

// Position is a standard chess position backed by corentings/chess. Both
// libraries number squares a1=0 through h8=63.
type Position struct {
	pos *chess.Position
	ep  gm.Square
}

// New returns the standard initial position.
func New() *Position {
	return &Position{pos: chess.NewGame().Position(), ep: gm.NoSquare}
}

// FromFEN sets up a position from fen.
func FromFEN(fen string) (*Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("chessadapter: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	return &Position{pos: pos, ep: fromSquare(pos.EnPassantSquare())}, nil
}

// Chess returns the underlying position.
func (p *Position) Chess() *chess.Position { return p.pos }

// FEN returns the position as FEN text.
func (p *Position) FEN() string { return p.pos.String() }

func (p *Position) PieceAt(sq gm.Square) gm.Piece {
	return fromPiece(p.pos.Board().Piece(chess.Square(sq)))
}

func (p *Position) SideToMove() gm.Color { return fromColor(p.pos.Turn()) }

func (p *Position) CastlingRights() gm.CastlingRights {
	var cr gm.CastlingRights
	rights := p.pos.CastleRights()
	for _, c := range [...]chess.Color{chess.White, chess.Black} {
		if rights.CanCastle(c, chess.KingSide) {
			cr |= gm.CastlingRight(fromColor(c), gm.KingSide)
		}
		if rights.CanCastle(c, chess.QueenSide) {
			cr |= gm.CastlingRight(fromColor(c), gm.QueenSide)
		}
	}
	return cr
}

// EnPassantSquare reports the square skipped by a two-step pawn advance on
// the previous ply, whether or not a capture there is possible.
func (p *Position) EnPassantSquare() gm.Square { return p.ep }

func (p *Position) IsCheckmate() bool { return p.pos.Status() == chess.Checkmate }

func (p *Position) IsStalemate() bool { return p.pos.Status() == chess.Stalemate }

// Moves returns the legal moves as goosemg move descriptions.
func (p *Position) Moves() []gm.Move {
	valid := p.pos.ValidMoves()
	out := make([]gm.Move, 0, len(valid))
	for i := range valid {
		out = append(out, p.describe(&valid[i]))
	}
	return out
}

// Play applies m, which must be one of Moves. It panics on drops and on moves
// that are not legal here.
func (p *Position) Play(m gm.Move) {
	if m.Kind() == gm.MovePut {
		panic("chessadapter: drops are not supported")
	}
	valid := p.pos.ValidMoves()
	for i := range valid {
		if p.describe(&valid[i]) != m {
			continue
		}
		p.ep = gm.NoSquare
		if m.Kind() == gm.MoveNormal && m.Role() == gm.PieceTypePawn {
			if d := m.To().Rank() - m.From().Rank(); d == 2 || d == -2 {
				p.ep = gm.Square((int(m.From()) + int(m.To())) / 2)
			}
		}
		p.pos = p.pos.Update(&valid[i])
		return
	}
	panic(fmt.Sprintf("chessadapter: illegal move %s in %s", m, p.FEN()))
}

func (p *Position) describe(m *chess.Move) gm.Move {
	from, to := gm.Square(m.S1()), gm.Square(m.S2())
	us := p.SideToMove()
	switch {
	case m.HasTag(chess.KingSideCastle):
		return gm.NewCastle(from, gm.RookHome(us, gm.KingSide))
	case m.HasTag(chess.QueenSideCastle):
		return gm.NewCastle(from, gm.RookHome(us, gm.QueenSide))
	case m.HasTag(chess.EnPassant):
		return gm.NewEnPassant(from, to)
	}
	return gm.NewNormal(p.PieceAt(from).Type(), from, to, p.PieceAt(to).Type(), fromPieceType(m.Promo()))
}

func fromSquare(sq chess.Square) gm.Square {
	if sq == chess.NoSquare {
		return gm.NoSquare
	}
	return gm.Square(sq)
}

func fromColor(c chess.Color) gm.Color {
	if c == chess.Black {
		return gm.Black
	}
	return gm.White
}

func fromPieceType(pt chess.PieceType) gm.PieceType {
	switch pt {
	case chess.Pawn:
		return gm.PieceTypePawn
	case chess.Knight:
		return gm.PieceTypeKnight
	case chess.Bishop:
		return gm.PieceTypeBishop
	case chess.Rook:
		return gm.PieceTypeRook
	case chess.Queen:
		return gm.PieceTypeQueen
	case chess.King:
		return gm.PieceTypeKing
	default:
		return gm.PieceTypeNone
	}
}

func fromPiece(p chess.Piece) gm.Piece {
	if p == chess.NoPiece {
		return gm.NoPiece
	}
	return fromPieceType(p.Type()).Of(fromColor(p.Color()))
}
