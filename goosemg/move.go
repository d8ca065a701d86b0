package goosemg

import "strings"

// Move encodes a move description in a 32-bit value. The description is
// trusted: nothing here checks that the move is legal on any board.
type Move uint32

// MoveKind tags which variant a Move holds.
type MoveKind uint8

const (
	// MoveNormal moves a piece from one square to another, possibly capturing or promoting.
	MoveNormal MoveKind = iota
	// MoveCastle moves king and rook; From is the king square, To the rook square.
	MoveCastle
	// MoveEnPassant captures the pawn that just advanced two ranks.
	MoveEnPassant
	// MovePut drops a piece from the pocket onto an empty square.
	MovePut
)

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	moveRoleShift    = 12 // 3 bits
	moveCaptureShift = 15 // 3 bits
	movePromoteShift = 18 // 3 bits
	moveKindShift    = 21 // 2 bits
)

func encode(kind MoveKind, role PieceType, from, to Square, capture, promotion PieceType) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(role&0x7) << moveRoleShift) |
		(uint32(capture&0x7) << moveCaptureShift) |
		(uint32(promotion&0x7) << movePromoteShift) |
		(uint32(kind&0x3) << moveKindShift)
	return Move(m)
}

// NewNormal constructs a normal move. capture and promotion are PieceTypeNone when absent.
func NewNormal(role PieceType, from, to Square, capture, promotion PieceType) Move {
	return encode(MoveNormal, role, from, to, capture, promotion)
}

// NewCastle constructs a castle from the king and rook origin squares.
func NewCastle(king, rook Square) Move {
	return encode(MoveCastle, PieceTypeKing, king, rook, PieceTypeNone, PieceTypeNone)
}

// NewEnPassant constructs an en-passant capture landing on to.
func NewEnPassant(from, to Square) Move {
	return encode(MoveEnPassant, PieceTypePawn, from, to, PieceTypePawn, PieceTypeNone)
}

// NewPut constructs a drop of role onto to.
func NewPut(role PieceType, to Square) Move {
	return encode(MovePut, role, 0, to, PieceTypeNone, PieceTypeNone)
}

// Kind returns the move variant.
func (m Move) Kind() MoveKind { return MoveKind((uint32(m) >> moveKindShift) & 0x3) }

// From returns the source square of the move. Meaningless for drops.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move (the rook square for castles).
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// Role returns the type of the piece that moves or is dropped.
func (m Move) Role() PieceType { return PieceType((uint32(m) >> moveRoleShift) & 0x7) }

// Capture returns the captured type, or PieceTypeNone.
func (m Move) Capture() PieceType { return PieceType((uint32(m) >> moveCaptureShift) & 0x7) }

// Promotion returns the promotion type, or PieceTypeNone.
func (m Move) Promotion() PieceType { return PieceType((uint32(m) >> movePromoteShift) & 0x7) }

// King returns the king origin of a castle.
func (m Move) King() Square { return m.From() }

// Rook returns the rook origin of a castle.
func (m Move) Rook() Square { return m.To() }

// CastlingSide returns the side a castle is made to.
func (m Move) CastlingSide() CastlingSide {
	if m.Rook() < m.King() {
		return QueenSide
	}
	return KingSide
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m.Capture() != PieceTypeNone }

// String produces UCI-style text (e.g. "e2e4", "e7e8q", "e1g1", "N@f3").
func (m Move) String() string {
	switch m.Kind() {
	case MovePut:
		return string(charFromPiece(m.Role().Of(White))) + "@" + m.To().String()
	case MoveCastle:
		to := NewSquare(m.CastlingSide().KingToFile(), m.King().Rank())
		return m.King().String() + to.String()
	}
	str := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo != PieceTypeNone {
		str += strings.ToLower(string(charFromPiece(promo.Of(White))))
	}
	return str
}
