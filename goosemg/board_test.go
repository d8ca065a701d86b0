package goosemg_test

import (
	"errors"
	"testing"

	gm "chess-zobrist/goosemg"
)

func mustParse(t *testing.T, fen string) *gm.Board {
	t.Helper()
	b, err := gm.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		gm.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"4k3/8/8/8/8/8/8/4K3[QNpp] b - - 3 17",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		if got := b.ToFEN(); got != fen {
			t.Errorf("round trip: got %q want %q", got, fen)
		}
	}

	b := mustParse(t, gm.FENStartPos)
	if b.PieceAt(0) != gm.WhiteRook { // a1
		t.Errorf("expected a1 WhiteRook, got %v", b.PieceAt(0))
	}
	if b.PieceAt(60) != gm.BlackKing { // e8
		t.Errorf("expected e8 BlackKing, got %v", b.PieceAt(60))
	}
	if b.EPD() != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -" {
		t.Errorf("unexpected EPD %q", b.EPD())
	}
}

func TestParseFENErrors(t *testing.T) {
	if b, err := gm.ParseFEN("not a fen"); err == nil || b != nil || !errors.Is(err, gm.ErrInvalidFEN) {
		t.Fatalf("syntax error: got board %v err %v", b, err)
	}

	cases := []string{
		"8/8/8/8/8/8/8/8 w - - 0 1",                 // no kings
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",             // right without rook
		"4k3/8/8/8/8/8/8/P3K3 w - - 0 1",            // pawn on first rank
		"4k3/8/8/8/4P3/8/8/4K3 b - e6 0 1",          // wrong en passant rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1", // no pushed pawn
	}
	for _, fen := range cases {
		b, err := gm.ParseFEN(fen)
		if err == nil {
			t.Errorf("%q: expected setup error", fen)
			continue
		}
		if b == nil {
			t.Errorf("%q: board should be returned alongside a setup error", fen)
		}
		var setupErr *gm.SetupError
		if !errors.As(err, &setupErr) || !errors.Is(err, gm.ErrInvalidSetup) {
			t.Errorf("%q: expected *SetupError, got %T %v", fen, err, err)
			continue
		}
		if setupErr.FEN != fen || len(setupErr.Problems) == 0 {
			t.Errorf("%q: setup error lacks context: %+v", fen, setupErr)
		}
	}
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"double push", gm.FENStartPos, "e2e4", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"knight", gm.FENStartPos, "g1f3", "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1"},
		{"castle king side", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", "4k3/8/8/8/8/8/8/5RK1 b - - 1 1"},
		{"castle queen side", "r3k3/8/8/8/8/8/8/4K3 b q - 4 9", "e8c8", "2kr4/8/8/8/8/8/8/4K3 w - - 5 10"},
		{"en passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", "e5d6", "k7/8/3P4/8/8/8/8/7K b - - 0 2"},
		{"rook takes rook", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "a1a8", "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1"},
		{"king move", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8d8", "r2k3r/8/8/8/8/8/8/R3K2R w KQ - 1 2"},
		{"promotion", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8q", "Q7/7k/8/8/8/8/8/K7 b - - 0 1"},
		{"drop", "4k3/8/8/8/8/8/8/4K3[Nq] w - - 0 1", "N@f3", "4k3/8/8/8/8/5N2/8/4K3[q] b - - 1 1"},
		{"capture to pocket", "4k3/8/8/8/8/8/3q4/4K3[] w - - 0 1", "e1d2", "4k3/8/8/8/8/8/3K4/8[Q] b - - 0 1"},
		{"promoted piece demotes", "4k3/8/8/8/8/8/3q~4/4K3[] w - - 0 1", "e1d2", "4k3/8/8/8/8/8/3K4/8[P] b - - 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			m, err := gm.ParseMove(b, tc.move)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tc.move, err)
			}
			if m.String() != tc.move {
				t.Errorf("move string: got %q want %q", m.String(), tc.move)
			}
			b.Play(m)
			if got := b.ToFEN(); got != tc.want {
				t.Fatalf("after %s: got %q want %q", tc.move, got, tc.want)
			}
			if problems := b.Validate(); len(problems) > 0 {
				t.Fatalf("board invalid after %s: %v", tc.move, problems)
			}
		})
	}
}

func TestParseMoveKinds(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	tests := []struct {
		text string
		kind gm.MoveKind
		role gm.PieceType
	}{
		{"e1g1", gm.MoveCastle, gm.PieceTypeKing},
		{"e1c1", gm.MoveCastle, gm.PieceTypeKing},
		{"e1h1", gm.MoveCastle, gm.PieceTypeKing},
		{"e5d6", gm.MoveEnPassant, gm.PieceTypePawn},
		{"e5e6", gm.MoveNormal, gm.PieceTypePawn},
		{"a1a8", gm.MoveNormal, gm.PieceTypeRook},
	}
	for _, tc := range tests {
		m, err := gm.ParseMove(b, tc.text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", tc.text, err)
		}
		if m.Kind() != tc.kind || m.Role() != tc.role {
			t.Errorf("%s: got kind %d role %d", tc.text, m.Kind(), m.Role())
		}
	}

	castle, _ := gm.ParseMove(b, "e1c1")
	if castle.King() != 4 || castle.Rook() != 0 || castle.CastlingSide() != gm.QueenSide {
		t.Errorf("queen side castle decoded as king %v rook %v", castle.King(), castle.Rook())
	}
	capture, _ := gm.ParseMove(b, "a1a8")
	if capture.Capture() != gm.PieceTypeRook || !capture.IsCapture() {
		t.Errorf("expected rook capture, got %d", capture.Capture())
	}

	for _, text := range []string{"", "e3e4", "e1e2x", "a1a1q", "0000", "d5d4", "N@f3"} {
		if _, err := gm.ParseMove(b, text); !errors.Is(err, gm.ErrInvalidMove) {
			t.Errorf("ParseMove(%q): expected ErrInvalidMove, got %v", text, err)
		}
	}
}
