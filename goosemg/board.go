package goosemg

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece (a role).
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// Of combines a colorless type with a side to produce a concrete Piece.
func (pt PieceType) Of(color Color) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	if color == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece { return pt.Of(color) }

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// CastlingSide selects the king-side (short) or queen-side (long) castle.
type CastlingSide uint8

const (
	KingSide  CastlingSide = 0
	QueenSide CastlingSide = 1
)

// KingToFile is the file the king lands on when castling to this side.
func (s CastlingSide) KingToFile() int {
	if s == QueenSide {
		return 2
	}
	return 6
}

// RookToFile is the file the rook lands on when castling to this side.
func (s CastlingSide) RookToFile() int {
	if s == QueenSide {
		return 3
	}
	return 5
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingAll = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// CastlingRight returns the single flag for color and side.
func CastlingRight(color Color, side CastlingSide) CastlingRights {
	return CastlingWhiteK << (uint(color)*2 + uint(side))
}

// Has reports whether the right for color and side is held.
func (cr CastlingRights) Has(color Color, side CastlingSide) bool {
	return cr&CastlingRight(color, side) != 0
}

// Square represents a board position (0-63), file = sq % 8, rank = sq / 8.
type Square int

const NoSquare Square = -1

// NewSquare builds a square from a file and rank in [0..7].
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// KingHome is the standard starting square of the king of color.
func KingHome(color Color) Square {
	if color == Black {
		return 60
	}
	return 4
}

// RookHome is the corner a castling rook of color starts on for side.
func RookHome(color Color, side CastlingSide) Square {
	rank := 0
	if color == Black {
		rank = 7
	}
	if side == QueenSide {
		return NewSquare(0, rank)
	}
	return NewSquare(7, rank)
}

// RookHomeSide reports which castling side sq is the rook corner of for color.
func RookHomeSide(color Color, sq Square) (CastlingSide, bool) {
	switch sq {
	case RookHome(color, KingSide):
		return KingSide, true
	case RookHome(color, QueenSide):
		return QueenSide, true
	}
	return KingSide, false
}

// Board represents the chess board state, including piece placement and game state.
type Board struct {
	// Piece placement array for each square (0 = NoPiece, otherwise a Piece constant)
	pieces [64]Piece

	// Side to move (which player's turn it is)
	sideToMove Color

	// Castling rights for both sides (bitmask using CastlingRights flags)
	castlingRights CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Halfmove clock (number of half-moves since last capture or pawn advance, for 50-move rule)
	halfmoveClock int

	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	// Drop play: pieces in hand per color, indexed by PieceType.
	drops    bool
	pockets  [2][7]uint8
	promoted uint64
}

// NewBoard returns the standard initial position.
func NewBoard() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the castling rights still held by both sides.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[int(sq)] }

// Drops reports whether pieces in hand may be dropped onto the board.
func (b *Board) Drops() bool { return b.drops }

// Pocket returns how many pieces of type pt color holds in hand.
func (b *Board) Pocket(color Color, pt PieceType) int {
	if pt > PieceTypeKing {
		return 0
	}
	return int(b.pockets[color][pt])
}

// AddToPocket puts a piece in hand and enables drop play.
func (b *Board) AddToPocket(color Color, pt PieceType) {
	b.drops = true
	b.pockets[color][pt]++
}

// Occupancy returns a bitboard of all occupied squares.
func (b *Board) Occupancy() uint64 {
	var occ uint64
	for sq, p := range b.pieces {
		if p != NoPiece {
			occ |= bb(Square(sq))
		}
	}
	return occ
}

// KingSquare returns the square of color's king, or NoSquare.
func (b *Board) KingSquare(color Color) Square {
	king := PieceTypeKing.Of(color)
	for sq, p := range b.pieces {
		if p == king {
			return Square(sq)
		}
	}
	return NoSquare
}

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// SetPiece sets a piece on a square, replacing any existing piece.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.pieces[int(sq)] = p
	b.promoted &^= bb(sq)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { b.SetPiece(sq, NoPiece) }
