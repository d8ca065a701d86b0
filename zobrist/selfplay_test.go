package zobrist_test

import (
	"math/rand"
	"testing"

	"chess-zobrist/dragon"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/zobrist"
)

const crazyhouseStart = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[] w KQkq - 0 1"

// randomDrop picks a pocket piece and an empty square for the side to move.
func randomDrop(rnd *rand.Rand, b *gm.Board) (gm.Move, bool) {
	us := b.SideToMove()
	var roles []gm.PieceType
	for pt := gm.PieceTypePawn; pt <= gm.PieceTypeQueen; pt++ {
		if b.Pocket(us, pt) > 0 {
			roles = append(roles, pt)
		}
	}
	if len(roles) == 0 {
		return 0, false
	}
	role := roles[rnd.Intn(len(roles))]
	occ := b.Occupancy()
	var empty []gm.Square
	for sq := gm.Square(0); sq < 64; sq++ {
		if occ&(1<<uint(sq)) != 0 {
			continue
		}
		if role == gm.PieceTypePawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			continue
		}
		empty = append(empty, sq)
	}
	if len(empty) == 0 {
		return 0, false
	}
	return gm.NewPut(role, empty[rnd.Intn(len(empty))]), true
}

// selfPlay plays random games until distinct positions have been seen, failing on
// any incremental/full mismatch or on two different positions sharing a fingerprint.
func selfPlay(t *testing.T, startFEN string, distinct int, seed int64, drops bool) {
	t.Helper()
	keys := zobrist.DefaultKeys()
	rnd := rand.New(rand.NewSource(seed))
	seen := make(map[uint64]string, distinct)
	var line []gm.Move

	newGame := func() *zobrist.Hashed[*gm.Board] {
		line = line[:0]
		h, err := zobrist.FromFEN(keys, startFEN)
		if err != nil {
			t.Fatalf("FromFEN: %v", err)
		}
		return h
	}
	h := newGame()

	for len(seen) < distinct {
		b := h.Position()
		var m gm.Move
		played := false
		if drops && rnd.Intn(4) == 0 && !dragon.InCheck(b) {
			m, played = randomDrop(rnd, b)
		}
		if !played {
			moves := dragon.LegalMoves(b)
			if len(moves) == 0 || b.HalfmoveClock() >= 100 || len(line) > 300 {
				h = newGame()
				continue
			}
			m = moves[rnd.Intn(len(moves))]
		}

		h.Play(m)
		line = append(line, m)

		if !h.Verify() {
			t.Fatalf("fingerprint out of sync after %v: %s", line, b.ToFEN())
		}
		epd := b.EPD()
		if prev, ok := seen[h.Fingerprint()]; ok && prev != epd {
			t.Fatalf("collision 0x%016x after %d positions: %q and %q", h.Fingerprint(), len(seen), prev, epd)
		}
		seen[h.Fingerprint()] = epd
	}
}

func TestSelfPlayNoCollisions(t *testing.T) {
	n := 10_000
	if testing.Short() {
		n = 1_000
	}
	selfPlay(t, gm.FENStartPos, n, 0x30b31137bb457b1b, false)
}

func TestSelfPlayWithDrops(t *testing.T) {
	n := 5_000
	if testing.Short() {
		n = 500
	}
	selfPlay(t, crazyhouseStart, n, 7, true)
}

func BenchmarkUpdate(b *testing.B) {
	keys := zobrist.DefaultKeys()
	board := gm.NewBoard()
	m, _ := gm.ParseMove(board, "e2e4")
	hash := zobrist.Compute(keys, board)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = zobrist.Update(keys, hash, board, m)
	}
}

func BenchmarkCompute(b *testing.B) {
	keys := zobrist.DefaultKeys()
	board := gm.NewBoard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = zobrist.Compute(keys, board)
	}
}
