package chessadapter_test

import (
	"math/rand"
	"testing"

	"chess-zobrist/chessadapter"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/zobrist"
)

var (
	_ zobrist.Position = (*chessadapter.Position)(nil)
	_ zobrist.Terminal = (*chessadapter.Position)(nil)
)

func TestQueriesMatchGoosemg(t *testing.T) {
	fens := []string{
		gm.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"8/8/8/8/p7/P7/6k1/2K5 b - - 0 1",
	}
	keys := zobrist.DefaultKeys()
	for _, fen := range fens {
		p, err := chessadapter.FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		b, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		for sq := gm.Square(0); sq < 64; sq++ {
			if p.PieceAt(sq) != b.PieceAt(sq) {
				t.Fatalf("%s: piece on %s differs: %d vs %d", fen, sq, p.PieceAt(sq), b.PieceAt(sq))
			}
		}
		if p.SideToMove() != b.SideToMove() || p.CastlingRights() != b.CastlingRights() || p.EnPassantSquare() != b.EnPassantSquare() {
			t.Fatalf("%s: state differs", fen)
		}
		if zobrist.Compute(keys, p) != zobrist.Compute(keys, b) {
			t.Fatalf("%s: fingerprints differ between position models", fen)
		}
	}
}

// TestRandomGamesAgree plays the same random games on both position models and
// checks that both wrappers stay equal to each other and to a full recompute.
func TestRandomGamesAgree(t *testing.T) {
	keys := zobrist.DefaultKeys()
	rnd := rand.New(rand.NewSource(1))
	games, plies := 4, 120
	if testing.Short() {
		games, plies = 1, 40
	}
	for g := 0; g < games; g++ {
		adapted := zobrist.NewInitial(keys, chessadapter.New())
		native := zobrist.NewInitial(keys, gm.NewBoard())
		for ply := 0; ply < plies; ply++ {
			moves := adapted.Position().Moves()
			if len(moves) == 0 {
				break
			}
			m := moves[rnd.Intn(len(moves))]
			adapted.Play(m)
			native.Play(m)
			if !adapted.Verify() {
				t.Fatalf("game %d ply %d: adapter fingerprint out of sync after %s (%s)", g, ply, m, adapted.Position().FEN())
			}
			if adapted.Fingerprint() != native.Fingerprint() {
				t.Fatalf("game %d ply %d: models disagree after %s: %s vs %s", g, ply, m, adapted.Position().FEN(), native.Position().ToFEN())
			}
		}
	}
}

func TestCastleAndEnPassant(t *testing.T) {
	keys := zobrist.DefaultKeys()
	adapted := zobrist.NewInitial(keys, chessadapter.New())
	native := zobrist.NewInitial(keys, gm.NewBoard())
	for _, text := range []string{"e2e4", "g8f6", "e4e5", "d7d5", "e5d6", "e7d6", "g1f3", "f8e7", "f1e2", "e8g8", "e1g1"} {
		m, err := gm.ParseMove(native.Position(), text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", text, err)
		}
		adapted.Play(m)
		native.Play(m)
		if !adapted.Verify() || adapted.Fingerprint() != native.Fingerprint() {
			t.Fatalf("after %s: adapter %s, native %s", text, adapted.Position().FEN(), native.Position().ToFEN())
		}
	}
	if adapted.CastlingRights() != 0 {
		t.Fatalf("both sides castled, rights left: %b", adapted.CastlingRights())
	}
}

func TestTerminalForwarded(t *testing.T) {
	keys := zobrist.DefaultKeys()
	h := zobrist.NewInitial(keys, chessadapter.New())
	for _, text := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, ok := find(h.Position(), text)
		if !ok {
			t.Fatalf("%s not among the legal moves", text)
		}
		if h.IsCheckmate() {
			t.Fatalf("checkmate reported before %s", text)
		}
		h.Play(m)
	}
	if !h.IsCheckmate() || h.IsStalemate() || !h.Verify() {
		t.Fatalf("fool's mate not reported through the wrapper")
	}

	stale, err := chessadapter.FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if hs := zobrist.New(keys, stale); !hs.IsStalemate() || hs.IsCheckmate() {
		t.Fatalf("stalemate not reported through the wrapper")
	}

	// goosemg boards carry no terminal queries of their own
	if zobrist.NewInitial(keys, gm.NewBoard()).IsCheckmate() {
		t.Fatalf("non-terminal position type reported checkmate")
	}
}

func find(p *chessadapter.Position, text string) (gm.Move, bool) {
	for _, m := range p.Moves() {
		if m.String() == text {
			return m, true
		}
	}
	return 0, false
}

func TestPlayPanicsOnDrop(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a drop")
		}
	}()
	chessadapter.New().Play(gm.NewPut(gm.PieceTypeKnight, gm.NewSquare(4, 3)))
}
