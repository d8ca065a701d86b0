package goosemg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every FEN syntax error.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(msg string) error { return fmt.Errorf("%w: %s", ErrInvalidFEN, msg) }

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	switch p {
	case WhitePawn:
		return 'P'
	case WhiteKnight:
		return 'N'
	case WhiteBishop:
		return 'B'
	case WhiteRook:
		return 'R'
	case WhiteQueen:
		return 'Q'
	case WhiteKing:
		return 'K'
	case BlackPawn:
		return 'p'
	case BlackKnight:
		return 'n'
	case BlackBishop:
		return 'b'
	case BlackRook:
		return 'r'
	case BlackQueen:
		return 'q'
	case BlackKing:
		return 'k'
	default:
		return '?' // should not happen for valid pieces
	}
}

// ParseFEN parses a FEN string and returns a new Board set up to that position.
//
// A syntax error returns a nil board. A position that parses but fails setup
// validation is returned together with a *SetupError so callers can still
// inspect it. A "[...]" suffix on the placement field lists pieces in hand and
// enables drops.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fenError("not enough fields")
	}

	board := &Board{fullmoveNumber: 1}
	// Default no en passant square
	board.enPassantSquare = NoSquare

	// 1. Piece placement (with optional pockets)
	placement := fields[0]
	if open := strings.IndexByte(placement, '['); open >= 0 {
		if !strings.HasSuffix(placement, "]") {
			return nil, fenError("unterminated pocket")
		}
		if err := board.parsePockets(placement[open+1 : len(placement)-1]); err != nil {
			return nil, err
		}
		placement = placement[:open]
	}
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fenError("incorrect number of ranks")
	}

	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, fenError("empty rank description")
		}
		rankIndex := 7 - i // Rank 7 (index) is rank8, down to 0 for rank1
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				// Digit: skip that many files (empty squares)
				file += int(ch - '0')
				continue
			}
			if ch == '~' && file > 0 {
				// crazyhouse marker: previous piece is promoted
				board.promoted |= bb(NewSquare(file-1, rankIndex))
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, fenError("unrecognized piece character")
			}
			if file >= 8 {
				return nil, fenError("too many squares in rank")
			}
			board.pieces[rankIndex*8+file] = piece
			file++
		}
		if file != 8 {
			return nil, fenError("rank does not have 8 columns")
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		board.sideToMove = White
	case "b":
		board.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				board.castlingRights |= CastlingWhiteK
			case 'Q':
				board.castlingRights |= CastlingWhiteQ
			case 'k':
				board.castlingRights |= CastlingBlackK
			case 'q':
				board.castlingRights |= CastlingBlackQ
			default:
				return nil, fenError("invalid castling rights character")
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("invalid en passant square")
		}
		board.enPassantSquare = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, fenError("halfmove clock is not a number")
		}
		board.halfmoveClock = halfmove
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, fenError("fullmove number is not a number")
		}
		board.fullmoveNumber = fullmove
	}

	if problems := board.Validate(); len(problems) > 0 {
		return board, &SetupError{FEN: fen, Problems: problems}
	}
	return board, nil
}

func (b *Board) parsePockets(s string) error {
	b.drops = true
	for _, ch := range s {
		p := pieceFromChar(ch)
		if p == NoPiece || p.Type() == PieceTypeKing {
			return fenError("invalid pocket piece")
		}
		b.pockets[p.Color()][p.Type()]++
	}
	return nil
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, errors.New("invalid algebraic square length")
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, errors.New("invalid algebraic square")
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

// ToFEN produces the FEN string representation of the board's current state.
func (b *Board) ToFEN() string {
	return b.fen(true, true)
}

// ChessFEN is ToFEN without pockets or promotion markers, for standard chess tooling.
func (b *Board) ChessFEN() string {
	return b.fen(false, true)
}

// EPD returns the first four FEN fields: the part of the state a fingerprint covers.
func (b *Board) EPD() string {
	return b.fen(false, false)
}

func (b *Board) fen(pockets, clocks bool) string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			p := b.pieces[sq]
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteRune(charFromPiece(p))
			if pockets && b.drops && b.promoted&bb(sq) != 0 {
				sb.WriteByte('~')
			}
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if pockets && b.drops {
		sb.WriteByte('[')
		for _, c := range [...]Color{White, Black} {
			for pt := PieceTypeQueen; pt >= PieceTypePawn; pt-- {
				for i := 0; i < int(b.pockets[c][pt]); i++ {
					sb.WriteRune(charFromPiece(pt.Of(c)))
				}
			}
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if b.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if b.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if b.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(b.enPassantSquare.String())
	if !clocks {
		return sb.String()
	}
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
