package zobrist

import (
	"fmt"

	gm "chess-zobrist/goosemg"
)

// Terminal is implemented by positions that can report the end of the game.
type Terminal interface {
	IsCheckmate() bool
	IsStalemate() bool
}

// Hashed composes a position with a fingerprint kept current on every Play.
// Read-only queries go straight to the wrapped position. A Hashed is not safe
// for concurrent use; the Keys it holds may be shared freely.
type Hashed[P Position] struct {
	pos  P
	keys *Keys
	hash uint64
}

// New wraps an already validated position, computing its fingerprint from scratch.
func New[P Position](keys *Keys, pos P) *Hashed[P] {
	return &Hashed[P]{pos: pos, keys: keys, hash: Compute(keys, pos)}
}

// NewInitial wraps pos, which must be the standard initial position: White to
// move, all four castling rights and no en-passant square. Only the board and
// the four rights are folded in.
func NewInitial[P Position](keys *Keys, pos P) *Hashed[P] {
	hash := pieces(keys, pos)

	// add in all the castling
	for _, c := range colors {
		for _, side := range sides {
			hash ^= keys.Castle(c, side)
		}
	}
	return &Hashed[P]{pos: pos, keys: keys, hash: hash}
}

// FromSetup builds the position with setup and wraps it. When setup fails the
// wrapper is still returned, holding whatever position setup produced, but its
// fingerprint is zero and must not be trusted.
func FromSetup[P Position](keys *Keys, setup func() (P, error)) (*Hashed[P], error) {
	pos, err := setup()
	if err != nil {
		return &Hashed[P]{pos: pos, keys: keys}, fmt.Errorf("zobrist: setup: %w", err)
	}
	return New(keys, pos), nil
}

// FromFEN is FromSetup for a goosemg board parsed from fen.
func FromFEN(keys *Keys, fen string) (*Hashed[*gm.Board], error) {
	return FromSetup(keys, func() (*gm.Board, error) { return gm.ParseFEN(fen) })
}

// Fingerprint returns the current fingerprint.
func (h *Hashed[P]) Fingerprint() uint64 { return h.hash }

// Keys returns the table the fingerprint is folded from.
func (h *Hashed[P]) Keys() *Keys { return h.keys }

// Position returns the wrapped position. Mutating it directly desynchronises
// the fingerprint.
func (h *Hashed[P]) Position() P { return h.pos }

func (h *Hashed[P]) PieceAt(sq gm.Square) gm.Piece { return h.pos.PieceAt(sq) }

func (h *Hashed[P]) SideToMove() gm.Color { return h.pos.SideToMove() }

func (h *Hashed[P]) CastlingRights() gm.CastlingRights { return h.pos.CastlingRights() }

func (h *Hashed[P]) EnPassantSquare() gm.Square { return h.pos.EnPassantSquare() }

// IsCheckmate forwards to the wrapped position, or reports false if it is not a Terminal.
func (h *Hashed[P]) IsCheckmate() bool {
	t, ok := any(h.pos).(Terminal)
	return ok && t.IsCheckmate()
}

// IsStalemate forwards to the wrapped position, or reports false if it is not a Terminal.
func (h *Hashed[P]) IsStalemate() bool {
	t, ok := any(h.pos).(Terminal)
	return ok && t.IsStalemate()
}

// Play updates the fingerprint from the pre-move state, then plays m on the
// wrapped position. The order is fixed: Update must see the board before m.
func (h *Hashed[P]) Play(m gm.Move) {
	h.hash = Update(h.keys, h.hash, h.pos, m)
	h.pos.Play(m)
}

// Verify reports whether the maintained fingerprint matches a full recompute.
func (h *Hashed[P]) Verify() bool {
	return h.hash == Compute(h.keys, h.pos)
}
